package config

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/casesondemand/tap-leadbyte/pkg/taperrors"
)

// Load reads a configuration file, substitutes ${VAR} environment
// references and unmarshals it over the defaults from New. JSON files work
// too since YAML is a superset.
func Load(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath) //nolint:gosec // G304: path comes from the CLI flag
	if err != nil {
		return nil, taperrors.Wrap(err, taperrors.ErrorTypeConfig, "failed to read config file")
	}

	cfg := New()
	content := substituteEnvVars(string(data))
	if err := yaml.Unmarshal([]byte(content), cfg); err != nil {
		return nil, taperrors.Wrap(err, taperrors.ErrorTypeConfig, "failed to parse config file")
	}

	return cfg, nil
}

// substituteEnvVars replaces ${VAR_NAME} with environment variable values
func substituteEnvVars(content string) string {
	for {
		start := strings.Index(content, "${")
		if start == -1 {
			break
		}
		end := strings.Index(content[start:], "}")
		if end == -1 {
			break
		}
		end += start

		varName := content[start+2 : end]
		envValue := os.Getenv(varName)
		content = content[:start] + envValue + content[end+1:]
	}
	return content
}
