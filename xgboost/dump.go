package xgboost

import (
	"strconv"
	"strings"

	"github.com/antoinebcx/ElectronML/pkg/errors"
)

// The dump* types mirror the XGBoost native JSON dump. They exist only for the
// first decode phase; buildModel turns them into a validated Model and nothing
// else ever touches them. Numeric model parameters arrive as strings in this
// format ("num_feature": "13"), which is why the fields below are typed string
// and parsed explicitly.

type dumpDocument struct {
	Learner dumpLearner `json:"learner"`
	Version []int       `json:"version"`
}

type dumpLearner struct {
	Objective       dumpObjective  `json:"objective"`
	GradientBooster dumpBooster    `json:"gradient_booster"`
	Attributes      dumpAttributes `json:"attributes"`
	FeatureNames    []string       `json:"feature_names"`
}

type dumpObjective struct {
	Name                   string            `json:"name"`
	SoftmaxMulticlassParam *dumpSoftmaxParam `json:"softmax_multiclass_param"`
}

type dumpSoftmaxParam struct {
	NumClass string `json:"num_class"`
}

type dumpBooster struct {
	Name  string        `json:"name"`
	Model dumpTreeModel `json:"model"`
}

type dumpTreeModel struct {
	Trees    []dumpTree `json:"trees"`
	TreeInfo []int      `json:"tree_info"`
}

type dumpTree struct {
	LeftChildren    []int         `json:"left_children"`
	RightChildren   []int         `json:"right_children"`
	SplitIndices    []int         `json:"split_indices"`
	SplitConditions []float64     `json:"split_conditions"`
	BaseWeights     []float64     `json:"base_weights"`
	TreeParam       dumpTreeParam `json:"tree_param"`
}

type dumpTreeParam struct {
	NumFeature string `json:"num_feature"`
	NumNodes   string `json:"num_nodes"`
}

type dumpAttributes struct {
	BaseScore string `json:"base_score"`
}

// defaultBaseScore is used when the artifact carries no parseable base_score
// attribute.
const defaultBaseScore = 0.5

// defaultNumClasses is used when a multiclass objective omits num_class or
// declares a value below 2.
const defaultNumClasses = 2

// buildModel validates a decoded dump and produces the typed Model. Every
// structural defect is reported as a ModelFormatError naming the offending
// field; a dump that passes here can be traversed without further structural
// checks, except for split feature indices which are checked against the
// input vector at traversal time.
func buildModel(doc *dumpDocument) (*Model, error) {
	name := doc.Learner.Objective.Name
	if name == "" {
		return nil, errors.NewModelFormatError("learner.objective.name", "objective is missing")
	}
	objective := parseObjective(name)

	rawTrees := doc.Learner.GradientBooster.Model.Trees
	if len(rawTrees) == 0 {
		return nil, errors.NewModelFormatError("learner.gradient_booster.model.trees", "ensemble has no trees")
	}

	numFeatures, err := strconv.Atoi(strings.TrimSpace(rawTrees[0].TreeParam.NumFeature))
	if err != nil || numFeatures <= 0 {
		return nil, errors.NewModelFormatError("trees[0].tree_param.num_feature",
			"feature count is not a positive integer")
	}

	numClasses := 1
	if objective == MulticlassSoftmax {
		numClasses = parseNumClass(doc.Learner.Objective.SoftmaxMulticlassParam)
	}

	baseScore := defaultBaseScore
	if s := doc.Learner.Attributes.BaseScore; s != "" {
		if v, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			baseScore = v
		}
	}

	trees := make([]Tree, 0, len(rawTrees))
	for i := range rawTrees {
		tree, err := buildTree(&rawTrees[i], i)
		if err != nil {
			return nil, err
		}
		trees = append(trees, tree)
	}

	treeToClass, err := buildTreeToClass(doc.Learner.GradientBooster.Model.TreeInfo, len(trees), numClasses)
	if err != nil {
		return nil, err
	}

	return &Model{
		Objective:     objective,
		ObjectiveName: name,
		NumClasses:    numClasses,
		NumFeatures:   numFeatures,
		BaseScore:     baseScore,
		Trees:         trees,
		TreeToClass:   treeToClass,
		FeatureNames:  append([]string(nil), doc.Learner.FeatureNames...),
	}, nil
}

// parseNumClass reads the multiclass class count. Absent, unparseable, or
// sub-binary values all fall back to the default of 2.
func parseNumClass(param *dumpSoftmaxParam) int {
	if param == nil {
		return defaultNumClasses
	}
	v, err := strconv.Atoi(strings.TrimSpace(param.NumClass))
	if err != nil || v < 2 {
		return defaultNumClasses
	}
	return v
}

// buildTreeToClass maps each tree to its class accumulator. Multiclass
// ensembles must declare a class for every tree; single-output ensembles map
// every tree to class 0 regardless of what tree_info says.
func buildTreeToClass(treeInfo []int, numTrees, numClasses int) ([]int, error) {
	mapping := make([]int, numTrees)
	if numClasses <= 1 {
		return mapping, nil
	}
	if len(treeInfo) != numTrees {
		return nil, errors.NewModelFormatError("learner.gradient_booster.model.tree_info",
			"length does not match the number of trees")
	}
	for i, class := range treeInfo {
		if class < 0 || class >= numClasses {
			return nil, errors.NewModelFormatError("learner.gradient_booster.model.tree_info",
				"tree "+strconv.Itoa(i)+" maps to class "+strconv.Itoa(class)+" outside the declared class count")
		}
		mapping[i] = class
	}
	return mapping, nil
}

// buildTree converts one raw tree into the flat Tree form, checking the
// invariants the traversal relies on: parallel arrays of equal length, child
// ids in range, consistent leaf-ness, and a node graph that is a proper tree
// when walked from the root.
func buildTree(raw *dumpTree, index int) (Tree, error) {
	field := func(name string) string {
		return "trees[" + strconv.Itoa(index) + "]." + name
	}

	n := len(raw.LeftChildren)
	if n == 0 {
		return Tree{}, errors.NewModelFormatError(field("left_children"), "tree has no nodes")
	}
	if len(raw.RightChildren) != n || len(raw.SplitIndices) != n ||
		len(raw.SplitConditions) != n || len(raw.BaseWeights) != n {
		return Tree{}, errors.NewModelFormatError(field("left_children"),
			"node arrays disagree in length")
	}

	for i := 0; i < n; i++ {
		left, right := raw.LeftChildren[i], raw.RightChildren[i]
		if (left == leafSentinel) != (right == leafSentinel) {
			return Tree{}, errors.NewModelFormatError(field("left_children"),
				"node "+strconv.Itoa(i)+" has inconsistent leaf markers")
		}
		if left != leafSentinel && (left < 0 || left >= n || right < 0 || right >= n) {
			return Tree{}, errors.NewModelFormatError(field("left_children"),
				"node "+strconv.Itoa(i)+" references a child outside the tree")
		}
	}

	if err := checkAcyclic(raw, index); err != nil {
		return Tree{}, err
	}

	return Tree{
		LeftChildren:  append([]int(nil), raw.LeftChildren...),
		RightChildren: append([]int(nil), raw.RightChildren...),
		SplitFeatures: append([]int(nil), raw.SplitIndices...),
		Thresholds:    append([]float64(nil), raw.SplitConditions...),
		Weights:       append([]float64(nil), raw.BaseWeights...),
	}, nil
}

// checkAcyclic walks the tree from node 0 and rejects any node reachable
// twice, which covers both cycles and children shared between parents.
// Traversal termination depends on this.
func checkAcyclic(raw *dumpTree, index int) error {
	n := len(raw.LeftChildren)
	visited := make([]bool, n)
	visited[0] = true

	stack := []int{0}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		left := raw.LeftChildren[node]
		if left == leafSentinel {
			continue
		}
		right := raw.RightChildren[node]
		for _, child := range [2]int{left, right} {
			if visited[child] {
				return errors.NewModelFormatError(
					"trees["+strconv.Itoa(index)+"].left_children",
					"node "+strconv.Itoa(child)+" is reachable more than once")
			}
			visited[child] = true
			stack = append(stack, child)
		}
	}
	return nil
}
