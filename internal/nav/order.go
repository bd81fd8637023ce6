package nav

import (
	"cmp"
	"math"

	"github.com/agentic-research/navtree/api"
)

// Compare orders two sibling descriptors.
//
//   - Two pinned entries compare by order, a missing order counting as 0.
//   - A pinned entry precedes any unpinned one.
//   - Among unpinned entries a defined order precedes a missing one, and two
//     missing orders are equal.
//   - Defined orders compare numerically.
//
// Equal entries must keep their input order, so Compare is only meaningful
// with a stable sort.
func Compare(a, b *api.Descriptor) int {
	if a.Pinned && b.Pinned {
		return cmp.Compare(orderOrZero(a), orderOrZero(b))
	}

	ao, aok := effectiveOrder(a)
	bo, bok := effectiveOrder(b)
	switch {
	case !aok && !bok:
		return 0
	case !bok:
		return -1
	case !aok:
		return 1
	}
	return cmp.Compare(ao, bo)
}

func orderOrZero(d *api.Descriptor) float64 {
	if d.Order == nil {
		return 0
	}
	return *d.Order
}

// effectiveOrder treats pinned as negative infinity; ok is false when the
// entry has no order at all.
func effectiveOrder(d *api.Descriptor) (float64, bool) {
	if d.Pinned {
		return math.Inf(-1), true
	}
	if d.Order == nil {
		return 0, false
	}
	return *d.Order, true
}
