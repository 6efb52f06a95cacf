package collision

import rl "github.com/gen2brain/raylib-go/raylib"

// Interval is the projection of a volume onto an axis.
type Interval struct {
	Min float32
	Max float32
}

// Overlaps is strict: intervals that only share an endpoint are separated.
func (i Interval) Overlaps(o Interval) bool {
	return i.Max > o.Min && o.Max > i.Min
}

func (i Interval) Center() float32 {
	return (i.Min + i.Max) / 2
}

// penetration returns how far i must move along the axis to clear o. The sign
// is +1 when o sits on the positive side of i, -1 otherwise.
func (i Interval) penetration(o Interval) (depth float32, sign float32) {
	if o.Center() >= i.Center() {
		return i.Max - o.Min, 1
	}
	return o.Max - i.Min, -1
}

// projectPoint projects p onto axis.
func projectPoint(p, axis rl.Vector3) float32 {
	return rl.Vector3DotProduct(p, axis)
}
