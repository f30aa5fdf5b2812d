package xgboost

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/antoinebcx/ElectronML/pkg/errors"
)

// LoadModel decodes a raw XGBoost native JSON dump into a validated Model.
// Decoding is fail-fast: a malformed or structurally inconsistent artifact
// returns a ModelFormatError and no partial model state.
func LoadModel(data []byte) (model *Model, err error) {
	defer errors.Recover(&err, "LoadModel")

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.WrapModelFormatError(errors.ErrEmptyData, "document", "model artifact is empty")
	}

	var doc dumpDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.WrapModelFormatError(err, "document", "not a valid JSON model dump")
	}
	return buildModel(&doc)
}

// LoadModelFromBase64 decodes a transport-encoded model artifact. Training
// services ship the JSON dump base64-encoded inside their result envelope;
// this strips the transport layer and loads the embedded document.
func LoadModelFromBase64(encoded string) (*Model, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return nil, errors.WrapModelFormatError(err, "document", "invalid base64 transport encoding")
	}
	return LoadModel(raw)
}

// LoadModelFromReader reads the full artifact from r and loads it.
func LoadModelFromReader(r io.Reader) (*Model, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read model artifact")
	}
	return LoadModelAuto(data)
}

// LoadModelFromFile loads a model artifact from disk. Both raw JSON dumps and
// base64-encoded artifacts are accepted.
func LoadModelFromFile(path string) (*Model, error) {
	cleanPath := filepath.Clean(path)
	if strings.Contains(cleanPath, "..") {
		return nil, errors.Newf("path traversal detected in model path: %s", path)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, errors.Wrap(err, "read model file")
	}
	return LoadModelAuto(data)
}

// LoadModelAuto detects whether data is a raw JSON dump or a base64-encoded
// one and loads it accordingly. A document starting with '{' is treated as
// raw JSON; anything else is assumed to be transport-encoded.
func LoadModelAuto(data []byte) (*Model, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		return LoadModel(data)
	}
	return LoadModelFromBase64(string(trimmed))
}
