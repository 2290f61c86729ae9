package scene

import (
	"fmt"
	"sort"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/Faultbox/midgard-ray/pkg/math"
)

// Easing shapes heading progress across an animation.
type Easing = ease.TweenFunc

var easings = map[string]Easing{
	"linear":     ease.Linear,
	"inQuad":     ease.InQuad,
	"outQuad":    ease.OutQuad,
	"inOutQuad":  ease.InOutQuad,
	"inOutSine":  ease.InOutSine,
	"inOutCubic": ease.InOutCubic,
	"outCubic":   ease.OutCubic,
}

// ParseEasing resolves an easing name from config.
func ParseEasing(name string) (Easing, error) {
	fn, ok := easings[name]
	if !ok {
		return nil, fmt.Errorf("unknown easing %q (have %v)", name, EasingNames())
	}
	return fn, nil
}

// EasingNames lists the accepted easing names, sorted.
func EasingNames() []string {
	names := make([]string, 0, len(easings))
	for name := range easings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HeadingOffset returns the heading change, in radians, of frame index out of
// total for a sequence turning turnDeg degrees overall. Frame 0 is always at
// offset 0; frame total would be at the full turn, so a 360 degree loop does
// not repeat its first frame.
func HeadingOffset(index, total int, turnDeg float64, fn Easing) float64 {
	if total <= 1 || index <= 0 {
		return 0
	}
	// Tween the unit fraction so the float32 easing never sees the angle.
	progress := float32(index) / float32(total)
	eased, _ := gween.New(0, 1, 1, fn).Set(progress)
	return math.Radians(float64(eased) * turnDeg)
}
