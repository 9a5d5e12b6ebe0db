package journey

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"strings"

	"github.com/golang/geo/s2"
)

// UrkuStepMeters is the length of one urku step.
const UrkuStepMeters = 6263.0

const earthRadiusMeters = 6371000.0

var (
	ErrCountryNotFound = errors.New("country not found")
	ErrInvalidLocation = errors.New("invalid location")
)

type LatLng struct {
	Lat float64
	Lng float64
}

func (p LatLng) String() string {
	return fmt.Sprintf("%.4f, %.4f", p.Lat, p.Lng)
}

// ParseLatLng reads "lat,lng" as sent in the URKU_LOCATION session variable.
func ParseLatLng(s string) (LatLng, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return LatLng{}, fmt.Errorf("%w: %q, expected \"lat,lng\"", ErrInvalidLocation, s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return LatLng{}, fmt.Errorf("%w: latitude: %v", ErrInvalidLocation, err)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return LatLng{}, fmt.Errorf("%w: longitude: %v", ErrInvalidLocation, err)
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return LatLng{}, fmt.Errorf("%w: %q out of range", ErrInvalidLocation, s)
	}
	return LatLng{Lat: lat, Lng: lng}, nil
}

func (p LatLng) toS2() s2.LatLng {
	return s2.LatLngFromDegrees(p.Lat, p.Lng)
}

// DistanceMeters is the great-circle distance between a and b on a spherical earth.
func DistanceMeters(a, b LatLng) float64 {
	return a.toS2().Distance(b.toS2()).Radians() * earthRadiusMeters
}

// DistanceInUrkus is DistanceMeters in urku steps, rounded to two decimals.
func DistanceInUrkus(a, b LatLng) float64 {
	return math.Round(DistanceMeters(a, b)/UrkuStepMeters*100) / 100
}

// ResourceLocations scatters n points around origin, farther out for journeys with
// more urku steps.
func ResourceLocations(rng *rand.Rand, origin LatLng, urkuSteps float64, n int) []LatLng {
	locations := make([]LatLng, 0, n)
	for range n {
		angle := rng.Float64() * 2 * math.Pi
		distanceKm := urkuSteps * 250 * rng.Float64()
		lat := origin.Lat + (distanceKm/111)*math.Cos(angle)
		lng := origin.Lng + (distanceKm/(111*math.Cos(origin.Lat*math.Pi/180)))*math.Sin(angle)
		locations = append(locations, LatLng{Lat: lat, Lng: lng})
	}
	return locations
}

// Country bounds are west, south, east, north in degrees.
type Country struct {
	Code   string
	Name   string
	Bounds [4]float64
}

var countries = []Country{
	{Code: "AR", Name: "Argentina", Bounds: [4]float64{-73.4154, -55.25, -53.6283, -21.8323}},
	{Code: "BO", Name: "Bolivia", Bounds: [4]float64{-69.5904, -22.8729, -57.4983, -9.7612}},
	{Code: "BR", Name: "Brazil", Bounds: [4]float64{-73.9872, -33.7683, -34.7299, 5.2448}},
	{Code: "CL", Name: "Chile", Bounds: [4]float64{-75.6443, -55.6118, -66.9596, -17.5801}},
	{Code: "CO", Name: "Colombia", Bounds: [4]float64{-78.9909, -4.2984, -66.8763, 12.4373}},
	{Code: "EC", Name: "Ecuador", Bounds: [4]float64{-80.9677, -4.9988, -75.2337, 1.3809}},
	{Code: "MX", Name: "Mexico", Bounds: [4]float64{-117.1276, 14.5389, -86.8116, 32.7209}},
	{Code: "PE", Name: "Peru", Bounds: [4]float64{-81.4109, -18.3479, -68.6651, -0.0573}},
	{Code: "US", Name: "United States", Bounds: [4]float64{-124.7844, 24.7433, -66.9514, 49.3458}},
	{Code: "VE", Name: "Venezuela", Bounds: [4]float64{-73.3049, 0.7248, -59.7582, 12.2019}},
}

func Countries() []Country {
	return append([]Country(nil), countries...)
}

func FindCountry(code string) (Country, error) {
	for _, c := range countries {
		if strings.EqualFold(c.Code, code) {
			return c, nil
		}
	}
	return Country{}, fmt.Errorf("%w: %q", ErrCountryNotFound, code)
}

// RandomCoordinates picks a uniform point inside the country's bounding box.
func RandomCoordinates(rng *rand.Rand, code string) (LatLng, error) {
	country, err := FindCountry(code)
	if err != nil {
		return LatLng{}, err
	}
	west, south, east, north := country.Bounds[0], country.Bounds[1], country.Bounds[2], country.Bounds[3]
	return LatLng{
		Lat: south + rng.Float64()*(north-south),
		Lng: west + rng.Float64()*(east-west),
	}, nil
}
