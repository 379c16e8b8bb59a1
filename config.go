package sunbind

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/sunbind/sunbind/types"
)

var validate = validator.New()

// LoadConfig reads a TOML (.toml) or YAML (.yaml, .yml) file on top of
// types.DefaultConfig and validates the result. An empty path returns the
// defaults.
func LoadConfig(path string) (types.Config, error) {
	cfg := types.DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return types.Config{}, fmt.Errorf("read config: %w", err)
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(b, &cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &cfg)
	default:
		return types.Config{}, fmt.Errorf("config %s: unsupported format %q", path, ext)
	}
	if err != nil {
		return types.Config{}, fmt.Errorf("decode config %s: %w", path, err)
	}
	if err := ValidateConfig(cfg); err != nil {
		return types.Config{}, err
	}
	return cfg, nil
}

// ValidateConfig checks cfg against its validate tags.
func ValidateConfig(cfg types.Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// ConfigSchema returns the JSON schema of the configuration file.
func ConfigSchema() ([]byte, error) {
	reflector := jsonschema.Reflector{
		ExpandedStruct: true,
	}
	bz, err := json.MarshalIndent(reflector.Reflect(&types.Config{}), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return bz, nil
}
