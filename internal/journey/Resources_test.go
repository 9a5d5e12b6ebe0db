package journey

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

func TestMockResourceDataRanges(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for _, career := range Careers() {
		f := float64(career.Rank()) / 3
		for range 200 {
			device := MockResourceData(rng, DeviceLocation, career)
			if want := 0.25 + f; math.Abs(device.UrkuSteps-want) > 1e-9 {
				t.Fatalf("%s device urkus = %v, want %v", career, device.UrkuSteps, want)
			}
			if lo, hi := 0.1*(1+f), 0.3*(1+f); device.DisparityScore < lo || device.DisparityScore > hi {
				t.Fatalf("%s device disparity %v outside [%v, %v]", career, device.DisparityScore, lo, hi)
			}

			random := MockResourceData(rng, RandomLocation, career)
			if random.UrkuSteps < 1.25 || random.UrkuSteps > 5 {
				t.Fatalf("%s random urkus %v outside [1.25, 5]", career, random.UrkuSteps)
			}
			if lo, hi := 0.7*(1-f/2), 1-f/2; random.DisparityScore < lo || random.DisparityScore > hi {
				t.Fatalf("%s random disparity %v outside [%v, %v]", career, random.DisparityScore, lo, hi)
			}
		}
	}
}

func TestProcessedDataFallbacks(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	env := ProcessEnvironmentalData(rng, &EnvironmentalData{AirQuality: 2})
	if env.AirQuality != 2 {
		t.Errorf("reading replaced: %v", env.AirQuality)
	}
	if env.FloodRisk <= 0 || env.FloodRisk >= 1 || env.HeatRisk <= 0 || env.HeatRisk >= 1 {
		t.Errorf("fallbacks out of range: %+v", env)
	}

	socio := ProcessSocioeconomicData(rng, nil)
	if socio.PopulationDensity <= 0 || socio.PopulationDensity >= 1000 || socio.Urbanization <= 0 {
		t.Errorf("socio fallbacks: %+v", socio)
	}

	land := ProcessLandUseData(rng, &LandUseData{UrbanLand: 0.4})
	if land.UrbanLand != 0.4 || land.AgriculturalLand <= 0 {
		t.Errorf("land: %+v", land)
	}
}

func TestCareerResourceDisparity(t *testing.T) {
	env := EnvironmentalData{AirQuality: 2.5, FloodRisk: 0.1, HeatRisk: 0.1}
	socio := SocioeconomicData{PopulationDensity: 2000, Urbanization: 0.5}
	land := LandUseData{AgriculturalLand: 0.2, UrbanLand: 0.5}

	score, distance := ResourceScores(env, socio, land)
	if score != (ResourceVector{Urban: 0.5, Population: 1, Infrastructure: 0.5, Environmental: 0.5}) {
		t.Fatalf("score = %+v", score)
	}
	if distance != (ResourceVector{Urban: 5, Population: 0, Infrastructure: 5, Environmental: 5}) {
		t.Fatalf("distance = %+v", distance)
	}

	got, err := CareerResourceDisparity(score, distance, Technology)
	if err != nil {
		t.Fatalf("CareerResourceDisparity: %v", err)
	}
	// gaps 0.3 0.4 0.2 0.0, weighted distances 4 0 3.5 2.5
	if math.Abs(got.DisparityScore-0.225) > 1e-9 || math.Abs(got.UrkuSteps-2.5) > 1e-9 {
		t.Fatalf("got %+v", got)
	}

	if _, err := CareerResourceDisparity(score, distance, Astronomy); !errors.Is(err, ErrUnknownCareer) {
		t.Fatalf("astronomy: got %v, want ErrUnknownCareer", err)
	}
}

func TestAssessCareer(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for _, career := range []Career{Agriculture, Healthcare, Technology} {
		got, err := AssessCareer(rng, career)
		if err != nil {
			t.Fatalf("%s: %v", career, err)
		}
		if got.DisparityScore < 0 || got.DisparityScore > 1 || got.UrkuSteps < 0 || got.UrkuSteps > maxResourceUrkus {
			t.Errorf("%s: %+v", career, got)
		}
	}
	if _, err := AssessCareer(rng, Astronomy); !errors.Is(err, ErrUnknownCareer) {
		t.Errorf("astronomy: got %v", err)
	}
}

func TestParseCareer(t *testing.T) {
	got, err := ParseCareer("  Healthcare ")
	if err != nil || got != Healthcare {
		t.Fatalf("got %q, %v", got, err)
	}
	if got.Title() != "Healthcare" || got.Rank() != 1 {
		t.Errorf("title %q rank %d", got.Title(), got.Rank())
	}
	if _, err := ParseCareer("pirate"); !errors.Is(err, ErrUnknownCareer) {
		t.Errorf("got %v, want ErrUnknownCareer", err)
	}
}
