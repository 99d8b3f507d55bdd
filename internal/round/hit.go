package round

import (
	"fmt"
	"math"
	"regexp"
	"strconv"

	"github.com/playmatatu/puttputt/internal/physics"
)

// ValidateHit rejects non-finite velocities and those faster than maxSpeed.
// A non-positive maxSpeed disables the speed check.
func ValidateHit(v physics.Vec2, maxSpeed float64) error {
	if !v.IsFinite() {
		return fmt.Errorf("%w: velocity must be finite", ErrInvalidHit)
	}
	if maxSpeed > 0 && v.Magnitude() > maxSpeed {
		return fmt.Errorf("%w: speed %.2f exceeds %.2f", ErrInvalidHit, v.Magnitude(), maxSpeed)
	}
	return nil
}

var hitMessage = regexp.MustCompile(`x:(-?\d+(?:\.\d+)?),y:(-?\d+(?:\.\d+)?)(?:\r?\n|$)`)

// ParseHitMessage reads the serial line format of the virtual putter,
// "x:<vx>,y:<vy>" terminated by a newline or the end of input.
func ParseHitMessage(s string) (physics.Vec2, error) {
	m := hitMessage.FindStringSubmatch(s)
	if m == nil {
		return physics.Vec2{}, fmt.Errorf("%w: unrecognised putter message %q", ErrInvalidHit, s)
	}
	vx, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return physics.Vec2{}, fmt.Errorf("%w: %v", ErrInvalidHit, err)
	}
	vy, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return physics.Vec2{}, fmt.Errorf("%w: %v", ErrInvalidHit, err)
	}
	if math.IsInf(vx, 0) || math.IsInf(vy, 0) {
		return physics.Vec2{}, fmt.Errorf("%w: velocity out of range", ErrInvalidHit)
	}
	return physics.NewVec2(vx, vy), nil
}
