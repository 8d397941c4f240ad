// Package manifest records what a run read and wrote. The file is
// overwritten on every run; it is not a history.
package manifest

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/cashflow/internal/config"
	"github.com/cleared-dev/cashflow/internal/etlerr"
)

// Manifest describes one completed run.
type Manifest struct {
	RunID      string        `yaml:"run_id"`
	FinishedAt time.Time     `yaml:"finished_at"`
	Input      string        `yaml:"input"`
	Counts     Counts        `yaml:"counts"`
	Outputs    []string      `yaml:"outputs"`
	Charts     []string      `yaml:"charts"`
	Config     config.Config `yaml:"config"`
}

// Counts are the row counts of each table produced.
type Counts struct {
	Transactions int `yaml:"transactions"`
	Months       int `yaml:"months"`
	Regions      int `yaml:"regions"`
	TopMerchants int `yaml:"top_merchants"`
}

// NewRunID returns a fresh identifier for a run.
func NewRunID() string {
	return uuid.NewString()
}

// Save writes m as YAML to path.
func Save(path string, m *Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("%w: writing manifest: %w", etlerr.ErrFileAccess, err)
	}
	return nil
}

// Load reads a manifest written by Save.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading manifest: %w", etlerr.ErrFileAccess, err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	return &m, nil
}
