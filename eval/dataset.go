package eval

// DataPoint is one labeled example. Immutable once read from source data:
// the engine never mutates Features or Label, and shares points freely
// across concurrent work units.
type DataPoint struct {
	ID       string    // stable identifier (row index or source key)
	Features []float64 // feature vector
	Label    string    // ground-truth label
}

// Dataset is the data collaborator contract: an enumerable collection of
// labeled points with a stable order. Stable ordering is what makes fold
// assignment reproducible; implementations must return the same point for
// the same index across calls.
type Dataset interface {
	Len() int
	At(i int) DataPoint
}

// MemDataset is the canonical in-memory Dataset backed by a slice.
type MemDataset struct {
	points []DataPoint
}

// NewMemDataset wraps points in a MemDataset. The slice is not copied;
// callers must not mutate it afterwards.
func NewMemDataset(points []DataPoint) *MemDataset {
	return &MemDataset{points: points}
}

// Len returns the number of points.
func (d *MemDataset) Len() int { return len(d.points) }

// At returns the point at index i.
func (d *MemDataset) At(i int) DataPoint { return d.points[i] }

// Subset is a read-only view over a subset of a Dataset, selected by index.
// Training and validation sets are Subsets of the same underlying Dataset,
// so a fold split shares the source data instead of copying it.
type Subset struct {
	src     Dataset
	indices []int
}

// NewSubset builds a view over src selecting the given indices, in order.
func NewSubset(src Dataset, indices []int) Subset {
	return Subset{src: src, indices: indices}
}

// Len returns the number of selected points.
func (s Subset) Len() int { return len(s.indices) }

// At returns the i-th selected point.
func (s Subset) At(i int) DataPoint { return s.src.At(s.indices[i]) }

// Indices returns the selected source indices. The returned slice is the
// Subset's own backing array; callers must treat it as read-only.
func (s Subset) Indices() []int { return s.indices }
