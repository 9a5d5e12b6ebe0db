package journey

import (
	"errors"
	"math/rand"
	"testing"
)

func TestNewPlan(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	location := LatLng{Lat: -16.5, Lng: -68.15}

	plan, err := NewPlan(rng, "  Amaru ", Technology, DeviceLocation, location)
	if err != nil {
		t.Fatalf("NewPlan: %v", err)
	}
	if plan.PlayerName != "Amaru" {
		t.Errorf("name = %q", plan.PlayerName)
	}
	if plan.Location != location || plan.LocationType != DeviceLocation {
		t.Errorf("location = %v %s", plan.Location, plan.LocationType)
	}
	if plan.Resources.UrkuSteps <= 0 {
		t.Errorf("resources = %+v", plan.Resources)
	}
	if len(plan.ResourceLocations) != resourceLocationCount {
		t.Errorf("got %d resource locations", len(plan.ResourceLocations))
	}
	if plan.Assessment == nil {
		t.Error("technology should be assessed")
	}

	stargazer, err := NewPlan(rng, "Sisa", Astronomy, RandomLocation, location)
	if err != nil {
		t.Fatalf("astronomy plan: %v", err)
	}
	if stargazer.Assessment != nil {
		t.Errorf("astronomy assessed as %+v", stargazer.Assessment)
	}
}

func TestNewPlanRejectsBadInput(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	if _, err := NewPlan(rng, "   ", Agriculture, RandomLocation, LatLng{}); !errors.Is(err, ErrMissingName) {
		t.Errorf("blank name: got %v", err)
	}
	if _, err := NewPlan(rng, "Kusi", Career("pirate"), RandomLocation, LatLng{}); !errors.Is(err, ErrUnknownCareer) {
		t.Errorf("unknown career: got %v", err)
	}
}
