package eval

import (
	"fmt"
	"hash/fnv"
	"math/rand"
)

// RunKey pins the random state of an evaluation run. Reusing a key against
// the same dataset and experiment spec reproduces the fold partition, and
// with deterministic trainers the scores as well.
type RunKey int64

// NewRunKey creates a RunKey from a seed value.
func NewRunKey(seed int64) RunKey {
	return RunKey(seed)
}

// SubsystemShuffle names the stream driving the pre-split dataset shuffle.
// It is seeded with the run key as-is, so --seed alone pins the partition.
const SubsystemShuffle = "shuffle"

// SubsystemAlgorithm names the stream for a stochastic trainer, keyed by
// its registered name.
func SubsystemAlgorithm(name string) string {
	return fmt.Sprintf("algorithm_%s", name)
}

// PartitionedRNG hands out one seeded random stream per named subsystem.
// Streams are independent: registering a new stochastic trainer leaves the
// shuffle stream, and hence the fold partition, of an existing run intact.
//
// The shuffle stream is seeded with the run key directly; every other
// stream folds an FNV-1a hash of its name into the key.
//
// Not safe for concurrent use. Obtain streams before fanning out and keep
// each one on a single goroutine.
type PartitionedRNG struct {
	key        RunKey
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a RunKey.
func NewPartitionedRNG(key RunKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:        key,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns the stream for the named subsystem, creating and
// caching it on first use. Repeated calls with the same name return the
// same *rand.Rand. Never returns nil.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}

	seed := int64(p.key)
	if name != SubsystemShuffle {
		seed ^= fnv1a64(name)
	}

	rng := rand.New(rand.NewSource(seed))
	p.subsystems[name] = rng
	return rng
}

// Key returns the RunKey this PartitionedRNG was created with.
func (p *PartitionedRNG) Key() RunKey {
	return p.key
}

func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
