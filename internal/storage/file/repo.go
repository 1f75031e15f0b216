// Package file serves tenant constraint configuration from a YAML document,
// for local runs and the CLI.
package file

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"hotel_allocation/internal/domain"
)

// Document layout:
//
//	tenants:
//	  acme:
//	    - code: ROOM_TYPE_MATCH
//	      enabled: true
//	    - code: BUDGET_CONSTRAINT
//	      enabled: true
//	      weight: -75
//	      params: {bufferPercent: 10}
type document struct {
	Tenants map[string][]domain.TenantConstraintConfig `yaml:"tenants"`
}

// Repo re-reads the file on every call so edits apply to the next solve.
type Repo struct {
	path string
}

func New(path string) *Repo { return &Repo{path: path} }

func (r *Repo) GetTenantConstraints(ctx context.Context, tenantID string) ([]domain.TenantConstraintConfig, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", domain.ErrConfigLoad, r.path, err)
	}
	return Parse(b, tenantID)
}

// Parse decodes a constraints document and returns the enabled rows for tenantID.
func Parse(b []byte, tenantID string) ([]domain.TenantConstraintConfig, error) {
	var doc document
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("%w: decode yaml: %v", domain.ErrConfigLoad, err)
	}
	var out []domain.TenantConstraintConfig
	for _, c := range doc.Tenants[tenantID] {
		if !c.Enabled {
			continue
		}
		if c.Code == "" {
			return nil, fmt.Errorf("%w: tenant %s: entry without code", domain.ErrConfigLoad, tenantID)
		}
		c.TenantID = tenantID
		out = append(out, c)
	}
	return out, nil
}
