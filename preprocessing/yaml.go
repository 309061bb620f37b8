package preprocessing

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/AijingLI-KCLLP/find-path-ratp/models"
)

// LoadYAML decodes a network document. Unknown keys are rejected so that a
// typo in a hand-edited file does not silently drop data.
func LoadYAML(r io.Reader) (*models.Network, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var net models.Network
	if err := dec.Decode(&net); err != nil {
		return nil, fmt.Errorf("decode network yaml: %w", err)
	}
	return finalize(&net)
}

func LoadYAMLFile(path string) (*models.Network, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return LoadYAML(f)
}

// WriteYAML encodes net in the format LoadYAML reads. Station lines are not
// written since they are derived on load.
func WriteYAML(w io.Writer, net *models.Network) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(net); err != nil {
		return fmt.Errorf("encode network yaml: %w", err)
	}
	return enc.Close()
}
