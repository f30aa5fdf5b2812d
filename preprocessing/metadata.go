package preprocessing

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/antoinebcx/ElectronML/pkg/errors"
)

// metadataDocument mirrors the companion JSON the training service emits
// next to every model artifact. Construction only checks that the document
// decodes against this schema; per-feature parameter blocks are validated
// lazily when a transform first touches them.
type metadataDocument struct {
	Features      []string                 `json:"features"`
	Categorical   map[string]*categories   `json:"categorical_features"`
	Numeric       map[string]scalingParams `json:"numeric_features"`
	ScalingMethod string                   `json:"scaling_method"`
}

// categories is one categorical feature's label table. The document's key
// order is significant: an unseen value falls back to the first label the
// training service declared, so decoding must not go through a plain map.
type categories struct {
	labels []string
	codes  map[string]float64
}

// UnmarshalJSON decodes a {label: code} object token by token, recording
// the labels in document order.
func (c *categories) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		// JSON null leaves the table empty.
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.NewModelFormatError("categorical_features", "category table must be a JSON object")
	}

	c.labels = c.labels[:0]
	c.codes = make(map[string]float64)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		label, ok := keyTok.(string)
		if !ok {
			return errors.NewModelFormatError("categorical_features", "category label is not a string")
		}

		valTok, err := dec.Token()
		if err != nil {
			return err
		}
		num, ok := valTok.(json.Number)
		if !ok {
			return errors.NewModelFormatError("categorical_features",
				fmt.Sprintf("category %q has a non-numeric code", label))
		}
		code, err := num.Float64()
		if err != nil {
			return errors.WrapModelFormatError(err, "categorical_features",
				fmt.Sprintf("category %q has an unparseable code", label))
		}

		if _, seen := c.codes[label]; !seen {
			c.labels = append(c.labels, label)
		}
		c.codes[label] = code
	}

	// Closing brace.
	_, err = dec.Token()
	return err
}

// lookup returns the code assigned to label at training time. A nil table
// (a JSON null in the document) never matches.
func (c *categories) lookup(label string) (float64, bool) {
	if c == nil {
		return 0, false
	}
	code, ok := c.codes[label]
	return code, ok
}

// first returns the first declared label and its code, the fallback target
// for values never seen at training time.
func (c *categories) first() (string, float64, bool) {
	if c == nil || len(c.labels) == 0 {
		return "", 0, false
	}
	label := c.labels[0]
	return label, c.codes[label], true
}
