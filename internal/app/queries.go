package app

import (
	"context"

	"hotel_allocation/internal/domain"
	"hotel_allocation/internal/solver"
)

type QueryService struct {
	repo  domain.ConstraintRepository
	store domain.ResultStore
}

func NewQueryService(r domain.ConstraintRepository, s domain.ResultStore) *QueryService {
	return &QueryService{repo: r, store: s}
}

func (s *QueryService) Catalog() []solver.Entry { return solver.Catalog() }

func (s *QueryService) TenantConstraints(ctx context.Context, tenantID string) ([]domain.TenantConstraintConfig, error) {
	return s.repo.GetTenantConstraints(ctx, tenantID)
}

func (s *QueryService) GetSolution(ctx context.Context, id string) (domain.HotelAllocation, error) {
	if s.store == nil {
		return domain.HotelAllocation{}, domain.ErrNotFound
	}
	return s.store.Get(ctx, id)
}
