package xgboost

import "strings"

// leafSentinel marks a missing child in the flat child arrays. A node whose
// left child is the sentinel is a leaf.
const leafSentinel = -1

// Objective represents the link-function family declared by the artifact
type Objective string

const (
	// BinaryLogistic covers binary-logistic style objectives (logistic link)
	BinaryLogistic Objective = "binary"
	// MulticlassSoftmax covers multiclass softmax style objectives (softmax link)
	MulticlassSoftmax Objective = "multiclass"
	// ObjectiveUnknown covers every other objective; such ensembles keep
	// single-output behavior and expose raw margins through PredictMargin
	ObjectiveUnknown Objective = "unknown"
)

// parseObjective maps the raw objective name to its link family.
// Unrecognized names degrade to single-output behavior instead of failing.
func parseObjective(name string) Objective {
	switch {
	case strings.HasPrefix(name, "binary:"):
		return BinaryLogistic
	case strings.HasPrefix(name, "multi:"):
		return MulticlassSoftmax
	default:
		return ObjectiveUnknown
	}
}

// Tree is a single regression tree stored as flat parallel arrays indexed by
// node id, with node 0 as the root. The flat layout keeps traversal free of
// pointer chasing; it is the artifact's own encoding, preserved as-is.
type Tree struct {
	// LeftChildren and RightChildren hold child node ids, or leafSentinel (-1)
	// when the node is a leaf. Leaf-ness is consistent: a node's left child is
	// the sentinel if and only if its right child is.
	LeftChildren  []int
	RightChildren []int

	// SplitFeatures holds the feature index tested at each internal node.
	// The value at a leaf is meaningless.
	SplitFeatures []int

	// Thresholds holds the split threshold compared against the feature value.
	Thresholds []float64

	// Weights holds the tree's contribution at leaves; at internal nodes the
	// artifact's base weight is carried along but never read during traversal.
	Weights []float64
}

// NumNodes returns the number of nodes in the tree.
func (t *Tree) NumNodes() int {
	return len(t.LeftChildren)
}

// IsLeaf reports whether node i is a terminal node.
func (t *Tree) IsLeaf(i int) bool {
	return t.LeftChildren[i] == leafSentinel
}

// Model is a decoded, validated boosted-tree ensemble. It is immutable after
// construction; a single Model may back any number of Predictors.
type Model struct {
	// Objective is the recognized link family, ObjectiveName the raw string
	// from the artifact.
	Objective     Objective
	ObjectiveName string

	// NumClasses is 1 for binary and regression ensembles and the declared
	// class count (>= 2) for multiclass ensembles.
	NumClasses int

	// NumFeatures is the feature count declared by the first tree. Every
	// input vector must have exactly this length.
	NumFeatures int

	// BaseScore is the additive prior applied before summing tree outputs
	// in the single-output case.
	BaseScore float64

	// Trees holds the ensemble in artifact order.
	Trees []Tree

	// TreeToClass maps each tree to the class accumulator it contributes to.
	// For single-output ensembles every entry is 0.
	TreeToClass []int

	// FeatureNames are the declared feature names, if the artifact carries
	// them. May be empty.
	FeatureNames []string
}

// ModelInfo is a read-only descriptor of a loaded ensemble, intended for
// introspection and debugging rather than prediction.
type ModelInfo struct {
	ObjectiveName string    `json:"objective"`
	Objective     Objective `json:"objective_family"`
	NumClasses    int       `json:"num_classes"`
	NumFeatures   int       `json:"num_features"`
	NumTrees      int       `json:"num_trees"`
	BaseScore     float64   `json:"base_score"`
	FeatureNames  []string  `json:"feature_names,omitempty"`
}

// Info returns the model's descriptor.
func (m *Model) Info() ModelInfo {
	return ModelInfo{
		ObjectiveName: m.ObjectiveName,
		Objective:     m.Objective,
		NumClasses:    m.NumClasses,
		NumFeatures:   m.NumFeatures,
		NumTrees:      len(m.Trees),
		BaseScore:     m.BaseScore,
		FeatureNames:  append([]string(nil), m.FeatureNames...),
	}
}
