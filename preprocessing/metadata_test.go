package preprocessing

import (
	"testing"

	mlerrors "github.com/antoinebcx/ElectronML/pkg/errors"
)

// mixedMetaJSON declares one categorical and one numeric feature. The
// category keys are deliberately not in alphabetical or code order so the
// tests can tell document order apart from any sorted order.
const mixedMetaJSON = `{
	"features": ["color", "size"],
	"categorical_features": {
		"color": {"red": 2, "green": 0, "blue": 1}
	},
	"numeric_features": {
		"size": {"mean": 10.0, "scale": 2.0}
	},
	"scaling_method": "standard"
}`

func mustPipeline(t *testing.T, src string, opts ...Option) *Pipeline {
	t.Helper()
	p, err := NewPipeline([]byte(src), opts...)
	if err != nil {
		t.Fatalf("Failed to build pipeline: %v", err)
	}
	return p
}

func TestNewPipeline(t *testing.T) {
	testCases := []struct {
		name      string
		document  string
		expectErr bool
		checks    func(t *testing.T, p *Pipeline)
	}{
		{
			name:     "mixed document",
			document: mixedMetaJSON,
			checks: func(t *testing.T, p *Pipeline) {
				if p.NumFeatures() != 2 {
					t.Errorf("Expected 2 features, got %d", p.NumFeatures())
				}
				if p.method != ScalingStandard {
					t.Errorf("Expected standard scaling, got %s", p.method)
				}
				table, ok := p.categorical["color"]
				if !ok {
					t.Fatal("Expected a category table for color")
				}
				if len(table.labels) != 3 || table.labels[0] != "red" || table.labels[1] != "green" || table.labels[2] != "blue" {
					t.Errorf("Expected document-order labels [red green blue], got %v", table.labels)
				}
				if code, ok := table.lookup("green"); !ok || code != 0 {
					t.Errorf("Expected code 0 for green, got %g (found=%t)", code, ok)
				}
				params, ok := p.numeric["size"]
				if !ok {
					t.Fatal("Expected scaling params for size")
				}
				if params.Mean != 10 || params.Scale != 2 {
					t.Errorf("Expected mean 10 scale 2, got %+v", params)
				}
			},
		},
		{
			name:     "null category table",
			document: `{"features":["color"],"categorical_features":{"color":null}}`,
			checks: func(t *testing.T, p *Pipeline) {
				// A JSON null decodes to a nil entry; lookups must treat it
				// as a table with no categories.
				table, ok := p.categorical["color"]
				if !ok {
					t.Fatal("Expected a table entry for color")
				}
				if _, found := table.lookup("red"); found {
					t.Error("Expected no matches on a null table")
				}
				if _, _, found := table.first(); found {
					t.Error("Expected no first label on a null table")
				}
			},
		},
		{
			name:      "empty document",
			document:  "",
			expectErr: true,
		},
		{
			name:      "not JSON",
			document:  `{broken`,
			expectErr: true,
		},
		{
			name:      "category table not an object",
			document:  `{"features":["color"],"categorical_features":{"color":[1,2]}}`,
			expectErr: true,
		},
		{
			name:      "non-numeric category code",
			document:  `{"features":["color"],"categorical_features":{"color":{"red":"zero"}}}`,
			expectErr: true,
		},
		{
			name:      "non-numeric scaling param",
			document:  `{"features":["size"],"numeric_features":{"size":{"mean":"ten"}}}`,
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := NewPipeline([]byte(tc.document))
			if tc.expectErr {
				if err == nil {
					t.Fatal("Expected an error, got none")
				}
				var formatErr *mlerrors.ModelFormatError
				if !mlerrors.As(err, &formatErr) {
					t.Errorf("Expected a ModelFormatError, got %T: %v", err, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if tc.checks != nil {
				tc.checks(t, p)
			}
		})
	}
}

func TestCategoryOrderSurvivesReencoding(t *testing.T) {
	// Same table content, reversed key order. The fallback target must
	// follow the document, not the codes.
	reversed := `{
		"features": ["color"],
		"categorical_features": {
			"color": {"blue": 1, "green": 0, "red": 2}
		}
	}`

	forward := mustPipeline(t, mixedMetaJSON)
	backward := mustPipeline(t, reversed)

	if label, code, _ := forward.categorical["color"].first(); label != "red" || code != 2 {
		t.Errorf("Expected first declared category red (code 2), got %s (code %g)", label, code)
	}
	if label, code, _ := backward.categorical["color"].first(); label != "blue" || code != 1 {
		t.Errorf("Expected first declared category blue (code 1), got %s (code %g)", label, code)
	}
}

func TestParseScalingMethod(t *testing.T) {
	testCases := []struct {
		name string
		want ScalingMethod
	}{
		{name: "standard", want: ScalingStandard},
		{name: "minmax", want: ScalingMinMax},
		{name: "robust", want: ScalingStandard},
		{name: "", want: ScalingStandard},
	}

	for _, tc := range testCases {
		if got := parseScalingMethod(tc.name); got != tc.want {
			t.Errorf("parseScalingMethod(%q) = %s, want %s", tc.name, got, tc.want)
		}
	}
}
