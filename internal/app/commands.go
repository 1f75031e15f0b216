package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"hotel_allocation/internal/domain"
	"hotel_allocation/internal/solver"
)

// CatalogSeeder writes the built-in catalog to a configuration store so that
// admin tooling and tenant rows can reference it.
type CatalogSeeder struct {
	w domain.CatalogWriter
}

func NewCatalogSeeder(w domain.CatalogWriter) *CatalogSeeder {
	return &CatalogSeeder{w: w}
}

// SeedCatalog upserts one template per catalog entry. Parents first: tenant
// rows reference templates by code.
func (s *CatalogSeeder) SeedCatalog(ctx context.Context) (int, error) {
	n := 0
	for _, e := range solver.Catalog() {
		if err := s.w.UpsertTemplate(ctx, Template(e)); err != nil {
			return n, fmt.Errorf("upsert template %s: %w", e.Code, err)
		}
		n++
	}
	log.Info().Int("templates", n).Msg("catalog seeded")
	return n, nil
}

// SeedTenantDefaults enables the catalog for a tenant at default weights,
// leaving the opt-in rules off.
func (s *CatalogSeeder) SeedTenantDefaults(ctx context.Context, tenantID string) error {
	for _, cfg := range solver.DefaultConfigs(tenantID) {
		// opt-in rules stay off until a tenant asks for them
		if cfg.Code == string(solver.AllBookingsAssigned) || cfg.Code == string(solver.ConnectingRooms) {
			cfg.Enabled = false
		}
		if err := s.w.UpsertTenantConstraint(ctx, cfg); err != nil {
			return fmt.Errorf("upsert %s for tenant %s: %w", cfg.Code, tenantID, err)
		}
	}
	log.Info().Str("tenant", tenantID).Msg("tenant defaults seeded")
	return nil
}

// Template converts a catalog entry to its persisted form.
func Template(e solver.Entry) domain.ConstraintTemplate {
	t := domain.ConstraintTemplate{
		Code:          string(e.Code),
		Name:          e.Name,
		Kind:          e.Kind,
		DefaultWeight: e.DefaultWeight,
	}
	if len(e.Schema) > 0 {
		t.ParamSchema = make(map[string]string, len(e.Schema))
		for k, v := range e.Schema {
			t.ParamSchema[k] = string(v)
		}
	}
	if len(e.Defaults) > 0 {
		t.DefaultParams = make(map[string]any, len(e.Defaults))
		for k, v := range e.Defaults {
			t.DefaultParams[k] = v
		}
	}
	return t
}
