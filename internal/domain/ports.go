package domain

import "context"

// ConstraintRepository returns a tenant's enabled, currently valid constraint
// configuration joined with the catalog template. Implementations must not cache.
type ConstraintRepository interface {
	GetTenantConstraints(ctx context.Context, tenantID string) ([]TenantConstraintConfig, error)
}

// ResultStore keeps solved allocations for later retrieval.
type ResultStore interface {
	Put(ctx context.Context, a HotelAllocation, ttlSec int) error
	Get(ctx context.Context, id string) (HotelAllocation, error)
}

// CatalogWriter persists catalog templates and tenant configuration.
type CatalogWriter interface {
	UpsertTemplate(ctx context.Context, t ConstraintTemplate) error
	UpsertTenantConstraint(ctx context.Context, c TenantConstraintConfig) error
}
