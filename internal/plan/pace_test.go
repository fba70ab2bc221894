package plan

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePace(t *testing.T) {
	tests := []struct {
		in      string
		wantSec float64
		wantErr bool
	}{
		{"5:30/km", 330, false},
		{"5:30 /km", 330, false},
		{"8:00/mi", 298.26, false},
		{"7:30/mile", 279.62, false},
		{"4:45", 285, false},    // bare under 10 min reads as per-km
		{"10:30", 391.46, false}, // bare 10+ min reads as per-mile
		{"fast", 0, true},
		{"5:3/km", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		p, err := ParsePace(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.InDelta(t, tt.wantSec, time.Duration(p).Seconds(), 0.5, tt.in)
	}
}

func TestPaceFormatting(t *testing.T) {
	p, err := ParsePace("5:30/km")
	require.NoError(t, err)

	assert.Equal(t, "5:30/km", p.String())
	assert.Equal(t, "8:51/mi", p.MileString())
	assert.InDelta(t, 3.03, p.MetersPerSecond(), 0.01)
}

func TestPaceAddPerMile(t *testing.T) {
	goal, err := ParsePace("8:00/mi")
	require.NoError(t, err)

	easy := goal.AddPerMile(75 * time.Second)
	assert.Equal(t, "9:15/mi", easy.MileString())

	vo2 := goal.AddPerMile(-25 * time.Second)
	assert.Equal(t, "7:35/mi", vo2.MileString())
}

func TestPaceSpeedRoundTrip(t *testing.T) {
	p, err := ParsePace("5:00/km")
	require.NoError(t, err)

	back := PaceFromSpeed(p.MetersPerSecond())
	assert.InDelta(t, time.Duration(p).Seconds(), time.Duration(back).Seconds(), 0.01)
}
