package journey

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownCareer = errors.New("career not found")

type Career string

const (
	Agriculture Career = "agriculture"
	Healthcare  Career = "healthcare"
	Technology  Career = "technology"
	Astronomy   Career = "astronomy"
)

// careers in rank order, a higher rank means a more resource hungry career
var careers = []Career{Agriculture, Healthcare, Technology, Astronomy}

func Careers() []Career {
	return append([]Career(nil), careers...)
}

func ParseCareer(s string) (Career, error) {
	c := Career(strings.ToLower(strings.TrimSpace(s)))
	if c.Rank() < 0 {
		return "", fmt.Errorf("%w: %q", ErrUnknownCareer, s)
	}
	return c, nil
}

// Rank is the career's position in the ranking, -1 when unknown.
func (c Career) Rank() int {
	for i, known := range careers {
		if known == c {
			return i
		}
	}
	return -1
}

func (c Career) Title() string {
	if c == "" {
		return ""
	}
	return strings.ToUpper(string(c[:1])) + string(c[1:])
}

type LocationType string

const (
	DeviceLocation LocationType = "device"
	RandomLocation LocationType = "random"
)
