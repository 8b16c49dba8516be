package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/motorent/fleet-api/pkg/cache"
	"github.com/motorent/fleet-api/pkg/common"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// Service handles service-catalog business logic
type Service struct {
	repo  RepositoryInterface
	cache *cache.Manager // nil disables caching
}

// NewService creates a new catalog service
func NewService(repo RepositoryInterface, cacheManager *cache.Manager) *Service {
	return &Service{repo: repo, cache: cacheManager}
}

// CreateServiceType creates a new service type
func (s *Service) CreateServiceType(ctx context.Context, req *CreateServiceTypeRequest) (*ServiceType, error) {
	if req.DefaultCost < 0 {
		return nil, common.NewValidationError("default cost cannot be negative")
	}

	st := &ServiceType{
		Name:        req.Name,
		DefaultCost: req.DefaultCost,
		IsActive:    true,
	}

	if err := s.repo.CreateServiceType(ctx, st); err != nil {
		return nil, fmt.Errorf("create service type: %w", err)
	}

	s.invalidateListCache(ctx)
	return st, nil
}

// GetServiceType returns a single service type, served from cache when possible
func (s *Service) GetServiceType(ctx context.Context, id uuid.UUID) (*ServiceType, error) {
	if s.cache != nil {
		var cached ServiceType
		if err := s.cache.Get(ctx, cache.Keys.ServiceType(id.String()), &cached); err == nil {
			return &cached, nil
		}
	}

	st, err := s.repo.GetServiceTypeByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, common.NewNotFoundError("service type not found", nil)
		}
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, cache.Keys.ServiceType(id.String()), st, cache.TTL.Medium())
	}
	return st, nil
}

// ListServiceTypes returns a page of service types
func (s *Service) ListServiceTypes(ctx context.Context, includeInactive bool, limit, offset int) (*ServiceTypeListResponse, int64, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	items, total, err := s.repo.ListServiceTypes(ctx, includeInactive, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	return &ServiceTypeListResponse{ServiceTypes: items}, total, nil
}

// UpdateServiceType applies a partial update to a service type
func (s *Service) UpdateServiceType(ctx context.Context, id uuid.UUID, req *UpdateServiceTypeRequest) (*ServiceType, error) {
	st, err := s.repo.GetServiceTypeByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, common.NewNotFoundError("service type not found", nil)
		}
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, common.NewValidationError("name cannot be empty")
		}
		st.Name = *req.Name
	}
	if req.DefaultCost != nil {
		if *req.DefaultCost < 0 {
			return nil, common.NewValidationError("default cost cannot be negative")
		}
		st.DefaultCost = *req.DefaultCost
	}
	if req.IsActive != nil {
		st.IsActive = *req.IsActive
	}

	if err := s.repo.UpdateServiceType(ctx, st); err != nil {
		return nil, fmt.Errorf("update service type: %w", err)
	}

	s.invalidateCache(ctx, id)
	return st, nil
}

// DeactivateServiceType soft-deactivates a service type so it no longer
// appears in pickers but history referencing it stays intact.
func (s *Service) DeactivateServiceType(ctx context.Context, id uuid.UUID) error {
	inactive := false
	_, err := s.UpdateServiceType(ctx, id, &UpdateServiceTypeRequest{IsActive: &inactive})
	return err
}

// DeleteServiceType hard-deletes a service type. Rejected with a conflict
// while maintenance plans or cost lines still reference it.
func (s *Service) DeleteServiceType(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetServiceTypeByID(ctx, id); err != nil {
		if err == pgx.ErrNoRows {
			return common.NewNotFoundError("service type not found", nil)
		}
		return err
	}

	refs, err := s.repo.CountReferences(ctx, id)
	if err != nil {
		return err
	}
	if refs > 0 {
		return common.NewConflictError("service type is referenced by maintenance plans or logs; deactivate it instead")
	}

	if err := s.repo.DeleteServiceType(ctx, id); err != nil {
		return fmt.Errorf("delete service type: %w", err)
	}

	s.invalidateCache(ctx, id)
	return nil
}

func (s *Service) invalidateCache(ctx context.Context, id uuid.UUID) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Delete(ctx, cache.Keys.ServiceType(id.String()))
	s.invalidateListCache(ctx)
}

func (s *Service) invalidateListCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Invalidate(ctx, "service_types:*")
}
