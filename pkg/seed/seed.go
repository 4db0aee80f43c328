package seed

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	ProductsFile = "products.json"
	OrdersFile   = "orders.json"
)

//go:embed data/*.json
var bundled embed.FS

// Bundled returns the raw bytes of a seed file compiled into the binary.
func Bundled(name string) ([]byte, error) {
	data, err := bundled.ReadFile("data/" + name)
	if err != nil {
		return nil, fmt.Errorf("bundled seed %s: %w", name, err)
	}
	return data, nil
}

// Load decodes seed records into dest. An empty overridePath uses the bundled file;
// otherwise the override is read as YAML when its extension is .yaml or .yml, JSON otherwise.
func Load(overridePath, bundledName string, dest any) error {
	if strings.TrimSpace(overridePath) == "" {
		data, err := Bundled(bundledName)
		if err != nil {
			return err
		}
		return decodeJSON(data, dest)
	}

	data, err := os.ReadFile(overridePath)
	if err != nil {
		return fmt.Errorf("read seed %s: %w", overridePath, err)
	}
	switch strings.ToLower(filepath.Ext(overridePath)) {
	case ".yaml", ".yml":
		return decodeYAML(data, dest)
	default:
		return decodeJSON(data, dest)
	}
}

func decodeJSON(data []byte, dest any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		return fmt.Errorf("decode seed json: %w", err)
	}
	return nil
}

// YAML is normalized through JSON so seed records only need json tags.
func decodeYAML(data []byte, dest any) error {
	var generic any
	if err := yaml.Unmarshal(data, &generic); err != nil {
		return fmt.Errorf("decode seed yaml: %w", err)
	}
	normalized, err := json.Marshal(generic)
	if err != nil {
		return fmt.Errorf("normalize seed yaml: %w", err)
	}
	return decodeJSON(normalized, dest)
}
