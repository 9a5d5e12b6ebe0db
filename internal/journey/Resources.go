package journey

import (
	"fmt"
	"math/rand"
)

// ResourceData is what the journey screen shows and the game run is filed under.
type ResourceData struct {
	DisparityScore float64
	UrkuSteps      float64
}

// MockResourceData stands in for real data. Device locations are the favourable case,
// their urku steps grow with the career rank; picked countries get a random spread.
func MockResourceData(rng *rand.Rand, locationType LocationType, career Career) ResourceData {
	careerFactor := float64(max(career.Rank(), 0)) / 3

	if locationType == DeviceLocation {
		return ResourceData{
			DisparityScore: (rng.Float64()*0.2 + 0.1) * (1 + careerFactor),
			UrkuSteps:      0.25 + careerFactor*(1.25-0.25),
		}
	}

	return ResourceData{
		DisparityScore: (rng.Float64()*0.3 + 0.7) * (1 - careerFactor/2),
		UrkuSteps:      1.25 + rng.Float64()*(5-1.25),
	}
}

type EnvironmentalData struct {
	AirQuality float64
	FloodRisk  float64
	HeatRisk   float64
}

type SocioeconomicData struct {
	PopulationDensity float64
	Urbanization      float64
}

type LandUseData struct {
	AgriculturalLand float64
	UrbanLand        float64
}

// The Process* functions fill missing (nil or zero) readings with random values.

func ProcessEnvironmentalData(rng *rand.Rand, raw *EnvironmentalData) EnvironmentalData {
	var in EnvironmentalData
	if raw != nil {
		in = *raw
	}
	return EnvironmentalData{
		AirQuality: orRandom(in.AirQuality, rng.Float64()*5),
		FloodRisk:  orRandom(in.FloodRisk, rng.Float64()),
		HeatRisk:   orRandom(in.HeatRisk, rng.Float64()),
	}
}

func ProcessSocioeconomicData(rng *rand.Rand, raw *SocioeconomicData) SocioeconomicData {
	var in SocioeconomicData
	if raw != nil {
		in = *raw
	}
	return SocioeconomicData{
		PopulationDensity: orRandom(in.PopulationDensity, rng.Float64()*1000),
		Urbanization:      orRandom(in.Urbanization, rng.Float64()),
	}
}

func ProcessLandUseData(rng *rand.Rand, raw *LandUseData) LandUseData {
	var in LandUseData
	if raw != nil {
		in = *raw
	}
	return LandUseData{
		AgriculturalLand: orRandom(in.AgriculturalLand, rng.Float64()),
		UrbanLand:        orRandom(in.UrbanLand, rng.Float64()),
	}
}

func orRandom(v, fallback float64) float64 {
	if v == 0 {
		return fallback
	}
	return v
}

// ResourceVector is one value per resource dimension, used for both scores in [0,1]
// and distances in urku steps.
type ResourceVector struct {
	Urban          float64
	Population     float64
	Infrastructure float64
	Environmental  float64
}

func (v ResourceVector) values() [4]float64 {
	return [4]float64{v.Urban, v.Population, v.Infrastructure, v.Environmental}
}

// maxResourceUrkus is the distance assigned to a resource with a score of zero.
const maxResourceUrkus = 10

// ResourceScores turns processed readings into scores and distances.
func ResourceScores(env EnvironmentalData, socio SocioeconomicData, land LandUseData) (score ResourceVector, distance ResourceVector) {
	score = ResourceVector{
		Urban:          land.UrbanLand,
		Population:     min(socio.PopulationDensity/1000, 1),
		Infrastructure: socio.Urbanization,
		Environmental:  (5 - env.AirQuality) / 5,
	}
	distance = ResourceVector{
		Urban:          (1 - score.Urban) * maxResourceUrkus,
		Population:     (1 - score.Population) * maxResourceUrkus,
		Infrastructure: (1 - score.Infrastructure) * maxResourceUrkus,
		Environmental:  score.Environmental * maxResourceUrkus,
	}
	return score, distance
}

var careerRequirements = map[Career]ResourceVector{
	Technology:  {Urban: 0.8, Population: 0.6, Infrastructure: 0.7, Environmental: 0.5},
	Healthcare:  {Urban: 0.7, Population: 0.9, Infrastructure: 0.8, Environmental: 0.7},
	Agriculture: {Urban: 0.3, Population: 0.4, Infrastructure: 0.5, Environmental: 0.9},
}

// CareerResourceDisparity is the mean gap between what a career needs and what a place
// offers, plus the requirement weighted mean distance to those resources.
func CareerResourceDisparity(score, distance ResourceVector, career Career) (ResourceData, error) {
	requirements, ok := careerRequirements[career]
	if !ok {
		return ResourceData{}, fmt.Errorf("%w: no resource requirements for %q", ErrUnknownCareer, career)
	}

	req := requirements.values()
	actual := score.values()
	dist := distance.values()

	var disparity, urkus float64
	for i := range req {
		gap := req[i] - actual[i]
		if gap < 0 {
			gap = -gap
		}
		disparity += gap
		urkus += dist[i] * req[i]
	}

	return ResourceData{
		DisparityScore: disparity / float64(len(req)),
		UrkuSteps:      urkus / float64(len(req)),
	}, nil
}

// AssessCareer runs the scoring pipeline on readings that are all missing, so every
// value comes from the fallbacks.
func AssessCareer(rng *rand.Rand, career Career) (ResourceData, error) {
	env := ProcessEnvironmentalData(rng, nil)
	socio := ProcessSocioeconomicData(rng, nil)
	land := ProcessLandUseData(rng, nil)
	score, distance := ResourceScores(env, socio, land)
	return CareerResourceDisparity(score, distance, career)
}
