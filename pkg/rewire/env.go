package rewire

import (
	"errors"
	"fmt"
	"strings"

	"github.com/macropower/rewire/pkg/rules"
)

// Env is the build environment of the host configuration.
type Env string

const (
	// EnvDevelopment trees keep loader chains under `use`.
	EnvDevelopment Env = "development"
	// EnvProduction trees keep loader chains in a `loader` list, as produced
	// by stylesheet extraction plugins.
	EnvProduction Env = "production"
)

var (
	ErrUnknownEnv = errors.New("unknown environment")

	AllEnvs = []string{
		string(EnvDevelopment),
		string(EnvProduction),
	}
)

// ParseEnv parses an environment name. Short forms "dev" and "prod" are
// accepted.
func ParseEnv(s string) (Env, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "development", "dev":
		return EnvDevelopment, nil
	case "production", "prod":
		return EnvProduction, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownEnv, s)
}

// ChainField returns the field holding loader chains in this environment.
func (e Env) ChainField() rules.ChainField {
	if e == EnvProduction {
		return rules.ChainLoader
	}

	return rules.ChainUse
}
