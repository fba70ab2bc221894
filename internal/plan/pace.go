package plan

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// MetersPerMile converts between metric and imperial distances.
const MetersPerMile = 1609.34

// Pace is a running pace expressed as time per kilometre.
type Pace time.Duration

var paceRE = regexp.MustCompile(`^(\d+):(\d{2})\s*(?:/\s*(mi|mile|km))?$`)

// ParsePace parses "M:SS/km" or "M:SS/mi" into a Pace. A bare "M:SS" is read
// as per-kilometre when under 10 minutes, per-mile otherwise.
func ParsePace(s string) (Pace, error) {
	m := paceRE.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, fmt.Errorf("invalid pace %q (want M:SS/km or M:SS/mi)", s)
	}
	mins, _ := strconv.Atoi(m[1])
	secs, _ := strconv.Atoi(m[2])
	if secs > 59 {
		return 0, fmt.Errorf("invalid pace %q (seconds out of range)", s)
	}
	d := time.Duration(mins)*time.Minute + time.Duration(secs)*time.Second

	unit := m[3]
	if unit == "" {
		if mins < 10 {
			unit = "km"
		} else {
			unit = "mi"
		}
	}
	if unit == "km" {
		return Pace(d), nil
	}
	// per-mile -> per-km
	return Pace(float64(d) * 1000 / MetersPerMile), nil
}

// String formats the pace as "M:SS/km".
func (p Pace) String() string {
	sec := int(time.Duration(p).Round(time.Second).Seconds())
	return fmt.Sprintf("%d:%02d/km", sec/60, sec%60)
}

// PerMile returns the pace as duration per mile.
func (p Pace) PerMile() time.Duration {
	return time.Duration(float64(p) * MetersPerMile / 1000)
}

// MileString formats the pace as "M:SS/mi".
func (p Pace) MileString() string {
	sec := int(p.PerMile().Round(time.Second).Seconds())
	return fmt.Sprintf("%d:%02d/mi", sec/60, sec%60)
}

// MetersPerSecond converts the pace to a speed.
func (p Pace) MetersPerSecond() float64 {
	if p <= 0 {
		return 0
	}
	return 1000 / time.Duration(p).Seconds()
}

// AddPerMile shifts the pace by a per-mile delta. A negative delta is faster.
func (p Pace) AddPerMile(delta time.Duration) Pace {
	perKm := time.Duration(float64(delta) * 1000 / MetersPerMile)
	out := time.Duration(p) + perKm
	if out < 0 {
		out = 0
	}
	return Pace(out)
}

// PaceFromSpeed converts a speed in m/s into a Pace.
func PaceFromSpeed(metersPerSecond float64) Pace {
	if metersPerSecond <= 0 {
		return 0
	}
	return Pace(time.Duration(1000 / metersPerSecond * float64(time.Second)))
}
