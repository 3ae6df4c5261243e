// Package eval provides the k-fold evaluation and parameter-search engine.
//
// # Reading Guide
//
// Start with these three files to understand the core cycle:
//   - split.go: deterministic partition of a dataset into k train/validation fold pairs
//   - evaluator.go: the train→predict→score cycle for one configuration across all folds
//   - search.go: fan-out over the configuration × fold matrix and selection of the optimum
//
// # Architecture
//
// The eval package defines the orchestrator and its capability contracts;
// collaborators live in sub-packages:
//   - eval/source/: dataset loaders (CSV, JSON)
//   - eval/algo/: reference training collaborators (majority-class, nearest-centroid, knn)
//
// The orchestrator never inspects collaborator identity — it calls through
// narrow interfaces and selects concrete implementations by name from an
// ExperimentSpec (bundle.go).
//
// # Key Interfaces
//
// The extension points are single-method or small interfaces:
//   - Dataset: enumerable labeled points with stable order
//   - Algorithm / Model: the two-operation training capability (train, predict)
//   - Preparator: optional pre-training dataset transform
//   - Serving: combine multi-algorithm predictions per input
//   - Pointwise / Aggregator: the two halves of a metric (score one triple, reduce many scores)
//
// # Determinism
//
// Fold assignment is positional (index mod k) over the dataset's stable
// order, optionally behind a seeded shuffle drawn from PartitionedRNG
// (rng.go). Given the same seed, dataset, and deterministic collaborators,
// a run reproduces its scores exactly.
package eval
