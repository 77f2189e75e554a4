package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/m3tools/m3cd/src/internal/config"
	"github.com/m3tools/m3cd/src/internal/domain"
)

type Runner interface {
	Init(args []string, globalArgs *AppContext) error
	Run() error
	Name() string
}

type AppContext struct {
	ConfigPath string
	Verbose    bool

	// Stdout receives command output. Nil means os.Stdout.
	Stdout io.Writer
	// Deps is created on first use when nil.
	Deps *domain.AppDependencies
}

func (c *AppContext) out() io.Writer {
	if c.Stdout == nil {
		return os.Stdout
	}
	return c.Stdout
}

func (c *AppContext) deps() *domain.AppDependencies {
	if c.Deps == nil {
		c.Deps = domain.NewDefaultDependencies()
	}
	return c.Deps
}

// loadAndValidateConfigOrFail loads the merge job from file and validates it.
// Missing defaults are filled in before validation.
func loadAndValidateConfigOrFail(configPath string) (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load merge job: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.ValidateConfig(); err != nil {
		return nil, fmt.Errorf("merge job validation failed: %w", err)
	}

	return cfg, nil
}
