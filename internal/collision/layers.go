package collision

import (
	"fmt"
	"math/bits"
)

// LayerMask is a set of collision groups, one bit per group.
type LayerMask uint32

const (
	LayerNone LayerMask = 0
	LayerAll  LayerMask = ^LayerMask(0)
)

// Layer returns the mask for a single group index (0-31).
func Layer(index uint) LayerMask {
	if index >= 32 {
		panic(fmt.Sprintf("collision: layer index %d out of range", index))
	}
	return LayerMask(1) << index
}

func (m LayerMask) Has(other LayerMask) bool {
	return m&other != 0
}

func (m LayerMask) With(other LayerMask) LayerMask {
	return m | other
}

func (m LayerMask) Without(other LayerMask) LayerMask {
	return m &^ other
}

// Count returns how many groups are set.
func (m LayerMask) Count() int {
	return bits.OnesCount32(uint32(m))
}

func (m LayerMask) String() string {
	return fmt.Sprintf("%032b", uint32(m))
}

// filtered reports whether a pair must not be tested: either side ignores a
// group the other belongs to.
func filtered(aLayers, aIgnore, bLayers, bIgnore LayerMask) bool {
	return aLayers.Has(bIgnore) || bLayers.Has(aIgnore)
}
