package preprocessing

import (
	"bytes"
	_ "embed"

	"github.com/AijingLI-KCLLP/find-path-ratp/models"
)

//go:embed data/paris.yaml
var parisYAML []byte

// Default returns the built-in central Paris network. Each call decodes a
// fresh copy, so callers may modify the result.
func Default() (*models.Network, error) {
	return LoadYAML(bytes.NewReader(parisYAML))
}
