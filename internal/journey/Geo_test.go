package journey

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

func TestParseLatLng(t *testing.T) {
	got, err := ParseLatLng(" -12.0464, -77.0428 ")
	if err != nil {
		t.Fatalf("ParseLatLng: %v", err)
	}
	if got != (LatLng{Lat: -12.0464, Lng: -77.0428}) {
		t.Fatalf("got %+v", got)
	}

	for _, bad := range []string{"", "1", "1,2,3", "north,2", "1,east", "91,0", "0,-181"} {
		if _, err := ParseLatLng(bad); !errors.Is(err, ErrInvalidLocation) {
			t.Errorf("%q: got %v, want ErrInvalidLocation", bad, err)
		}
	}
}

func TestDistanceMeters(t *testing.T) {
	tests := []struct {
		name string
		a, b LatLng
		want float64
	}{
		{name: "equator to pole", a: LatLng{Lat: 0, Lng: 0}, b: LatLng{Lat: 90, Lng: 0}, want: earthRadiusMeters * math.Pi / 2},
		{name: "antipodes", a: LatLng{Lat: 0, Lng: 0}, b: LatLng{Lat: 0, Lng: 180}, want: earthRadiusMeters * math.Pi},
		{name: "across the date line", a: LatLng{Lat: 0, Lng: 179.5}, b: LatLng{Lat: 0, Lng: -179.5}, want: earthRadiusMeters * math.Pi / 180},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := DistanceMeters(tc.a, tc.b); math.Abs(got-tc.want) > 1 {
				t.Fatalf("got %.1f m, want %.1f m", got, tc.want)
			}
		})
	}

	// Lima to Cusco is roughly 580 km
	lima := LatLng{Lat: -12.0464, Lng: -77.0428}
	cusco := LatLng{Lat: -13.5319, Lng: -71.9675}
	if got := DistanceMeters(lima, cusco); got < 560000 || got > 600000 {
		t.Fatalf("Lima to Cusco = %.0f m", got)
	}
}

func TestDistanceInUrkus(t *testing.T) {
	lima := LatLng{Lat: -12.0464, Lng: -77.0428}
	if got := DistanceInUrkus(lima, lima); got != 0 {
		t.Fatalf("same point = %v", got)
	}

	// one degree of latitude is about 111.19 km
	a := LatLng{Lat: 0, Lng: 0}
	b := LatLng{Lat: 1, Lng: 0}
	want := math.Round(earthRadiusMeters*math.Pi/180/UrkuStepMeters*100) / 100
	if got := DistanceInUrkus(a, b); got != want {
		t.Fatalf("got %v, want %v", got, want)
	}
	if got := DistanceInUrkus(b, a); got != want {
		t.Fatalf("not symmetric: %v", got)
	}
	if got := DistanceInUrkus(a, b); got != math.Round(got*100)/100 {
		t.Fatalf("%v not rounded to two decimals", got)
	}
}

func TestRandomCoordinates(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for _, country := range Countries() {
		west, south, east, north := country.Bounds[0], country.Bounds[1], country.Bounds[2], country.Bounds[3]
		for range 50 {
			p, err := RandomCoordinates(rng, country.Code)
			if err != nil {
				t.Fatalf("%s: %v", country.Code, err)
			}
			if p.Lat < south || p.Lat > north || p.Lng < west || p.Lng > east {
				t.Fatalf("%s: %v outside bounds", country.Code, p)
			}
		}
	}

	if _, err := RandomCoordinates(rng, "XX"); !errors.Is(err, ErrCountryNotFound) {
		t.Fatalf("got %v, want ErrCountryNotFound", err)
	}
}

func TestFindCountryIgnoresCase(t *testing.T) {
	country, err := FindCountry("pe")
	if err != nil || country.Name != "Peru" {
		t.Fatalf("got %+v, %v", country, err)
	}
}

func TestResourceLocations(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	origin := LatLng{Lat: -13.5, Lng: -72}

	locations := ResourceLocations(rng, origin, 2, 5)
	if len(locations) != 5 {
		t.Fatalf("got %d locations", len(locations))
	}
	// at most 500 km out, with slack for the flat-earth approximation
	for _, location := range locations {
		if d := DistanceMeters(origin, location); d > 520000 {
			t.Errorf("%v is %.0f m away", location, d)
		}
	}
}
