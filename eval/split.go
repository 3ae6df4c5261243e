package eval

import "math/rand"

// FoldPair is one train/validation partition out of k. Validation holds the
// points assigned to this fold; Training holds everything else.
type FoldPair struct {
	Fold       int
	Training   Subset
	Validation Subset
}

// Split partitions ds into k disjoint validation folds and their
// complementary training folds. Point i goes to validation fold i mod k
// over the dataset's own order, so re-running the split on the same dataset
// and k yields identical partitions. The source dataset is not mutated.
//
// Returns *InvalidFoldCountError if k < 2 or k > ds.Len().
func Split(ds Dataset, k int) ([]FoldPair, error) {
	order := make([]int, ds.Len())
	for i := range order {
		order[i] = i
	}
	return splitOrder(ds, k, order)
}

// SplitShuffled is Split over a seeded permutation of the dataset order.
// The shuffle is drawn from rng, so the same rng state reproduces the same
// partition; after that the assignment is the same positional mod-k rule.
func SplitShuffled(ds Dataset, k int, rng *rand.Rand) ([]FoldPair, error) {
	order := rng.Perm(ds.Len())
	return splitOrder(ds, k, order)
}

func splitOrder(ds Dataset, k int, order []int) ([]FoldPair, error) {
	n := ds.Len()
	if k < 2 || k > n {
		return nil, &InvalidFoldCountError{K: k, DatasetSize: n}
	}

	// Assign position p in the enumeration order to validation fold p mod k.
	validation := make([][]int, k)
	for p, idx := range order {
		f := p % k
		validation[f] = append(validation[f], idx)
	}

	folds := make([]FoldPair, k)
	for f := 0; f < k; f++ {
		training := make([]int, 0, n-len(validation[f]))
		for p, idx := range order {
			if p%k != f {
				training = append(training, idx)
			}
		}
		folds[f] = FoldPair{
			Fold:       f,
			Training:   NewSubset(ds, training),
			Validation: NewSubset(ds, validation[f]),
		}
	}
	return folds, nil
}
