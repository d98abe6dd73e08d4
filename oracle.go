package qsearch

import "fmt"

/*
Oracle is a black-box predicate marking solution states within a search
space. It is logically immutable: restricting an oracle produces a new
oracle wrapping the old predicate, never a mutation of it, so earlier
rounds can never observe a later round's exclusions.
*/
type Oracle struct {
	space SearchSpace
	pred  func(x int) bool
}

// NewOracle wraps a caller-supplied predicate over the given space.
func NewOracle(space SearchSpace, pred func(x int) bool) *Oracle {
	return &Oracle{space: space, pred: pred}
}

/*
IndexOracle builds an oracle marking exactly the given indices. Indices
outside the space are ignored rather than marked.
*/
func IndexOracle(space SearchSpace, solutions ...int) *Oracle {
	marked := make(map[int]struct{}, len(solutions))
	for _, x := range solutions {
		if space.Contains(x) {
			marked[x] = struct{}{}
		}
	}
	return &Oracle{
		space: space,
		pred: func(x int) bool {
			_, ok := marked[x]
			return ok
		},
	}
}

/*
MaskOracle builds an oracle marking every index whose bits match pattern
under mask, i.e. x&mask == pattern&mask.
*/
func MaskOracle(space SearchSpace, mask, pattern int) *Oracle {
	want := pattern & mask
	return &Oracle{
		space: space,
		pred: func(x int) bool {
			return x&mask == want
		},
	}
}

// Space returns the search space this oracle is defined over.
func (o *Oracle) Space() SearchSpace {
	return o.space
}

// Evaluate reports whether x is a solution. Evaluating outside the
// search space fails with ErrInvalidIndex.
func (o *Oracle) Evaluate(x int) (bool, error) {
	if !o.space.Contains(x) {
		return false, fmt.Errorf("%w: %d not in %s", ErrInvalidIndex, x, o.space)
	}
	return o.pred(x), nil
}

/*
Restricted returns a derived oracle that reports non-solution for every
index in exclude and defers to the base oracle otherwise. The exclusion
set is copied, so the caller may keep mutating its own set between
rounds without aliasing the oracle.
*/
func (o *Oracle) Restricted(exclude map[int]struct{}) *Oracle {
	if len(exclude) == 0 {
		return o
	}
	frozen := make(map[int]struct{}, len(exclude))
	for x := range exclude {
		frozen[x] = struct{}{}
	}
	base := o.pred
	return &Oracle{
		space: o.space,
		pred: func(x int) bool {
			if _, ok := frozen[x]; ok {
				return false
			}
			return base(x)
		},
	}
}

// marks is the bounds-unchecked predicate used by backends that iterate
// the whole space. Callers guarantee x is in range.
func (o *Oracle) marks(x int) bool {
	return o.pred(x)
}
