package journey

import (
	"errors"
	"math/rand"
	"strings"
)

var ErrMissingName = errors.New("player name is required")

const resourceLocationCount = 5

// Plan is everything chosen and computed before the player faces their urkus.
type Plan struct {
	PlayerName        string
	Career            Career
	LocationType      LocationType
	Location          LatLng
	CountryName       string
	Resources         ResourceData
	ResourceLocations []LatLng
	// Assessment is nil for careers without resource requirements.
	Assessment *ResourceData
}

// NewPlan fills in the resource data and the resource locations for a journey.
func NewPlan(rng *rand.Rand, name string, career Career, locationType LocationType, location LatLng) (Plan, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Plan{}, ErrMissingName
	}
	if _, err := ParseCareer(string(career)); err != nil {
		return Plan{}, err
	}

	resources := MockResourceData(rng, locationType, career)

	var assessment *ResourceData
	if assessed, err := AssessCareer(rng, career); err == nil {
		assessment = &assessed
	}

	return Plan{
		PlayerName:        name,
		Career:            career,
		LocationType:      locationType,
		Location:          location,
		Resources:         resources,
		ResourceLocations: ResourceLocations(rng, location, resources.UrkuSteps, resourceLocationCount),
		Assessment:        assessment,
	}, nil
}
