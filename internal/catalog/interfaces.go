package catalog

import (
	"context"

	"github.com/google/uuid"
)

// RepositoryInterface defines the storage contract for service types
type RepositoryInterface interface {
	CreateServiceType(ctx context.Context, st *ServiceType) error
	GetServiceTypeByID(ctx context.Context, id uuid.UUID) (*ServiceType, error)
	ListServiceTypes(ctx context.Context, includeInactive bool, limit, offset int) ([]ServiceType, int64, error)
	UpdateServiceType(ctx context.Context, st *ServiceType) error
	DeleteServiceType(ctx context.Context, id uuid.UUID) error
	CountReferences(ctx context.Context, serviceTypeID uuid.UUID) (int64, error)
}
