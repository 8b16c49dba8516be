package renters

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/motorent/fleet-api/pkg/common"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// Service handles renter business logic
type Service struct {
	repo RepositoryInterface
}

// NewService creates a new renters service
func NewService(repo RepositoryInterface) *Service {
	return &Service{repo: repo}
}

// Create registers a renter
func (s *Service) Create(ctx context.Context, req *CreateRenterRequest) (*Renter, error) {
	if strings.TrimSpace(req.Phone) == "" {
		return nil, common.NewValidationError("phone is required")
	}

	rn := &Renter{
		FirstName:      strings.TrimSpace(req.FirstName),
		LastName:       strings.TrimSpace(req.LastName),
		Phone:          strings.TrimSpace(req.Phone),
		Email:          req.Email,
		DocumentNumber: req.DocumentNumber,
		LicenseNumber:  req.LicenseNumber,
		Note:           req.Note,
	}
	if err := s.repo.Create(ctx, rn); err != nil {
		return nil, fmt.Errorf("create renter: %w", err)
	}
	return rn, nil
}

// Get returns a renter by ID
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Renter, error) {
	rn, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, common.NewNotFoundError("renter not found", nil)
		}
		return nil, err
	}
	return rn, nil
}

// List returns renters matching an optional search string
func (s *Service) List(ctx context.Context, search string, limit, offset int) (*RenterListResponse, int64, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	rns, total, err := s.repo.List(ctx, strings.TrimSpace(search), limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return &RenterListResponse{Renters: rns}, total, nil
}

// Update applies a partial update to a renter
func (s *Service) Update(ctx context.Context, id uuid.UUID, req *UpdateRenterRequest) (*Renter, error) {
	rn, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		rn.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		rn.LastName = *req.LastName
	}
	if req.Phone != nil {
		if strings.TrimSpace(*req.Phone) == "" {
			return nil, common.NewValidationError("phone cannot be empty")
		}
		rn.Phone = *req.Phone
	}
	if req.Email != nil {
		rn.Email = *req.Email
	}
	if req.DocumentNumber != nil {
		rn.DocumentNumber = *req.DocumentNumber
	}
	if req.LicenseNumber != nil {
		rn.LicenseNumber = *req.LicenseNumber
	}
	if req.Note != nil {
		rn.Note = *req.Note
	}

	if err := s.repo.Update(ctx, rn); err != nil {
		return nil, fmt.Errorf("update renter: %w", err)
	}
	return rn, nil
}

// GetStats returns a renter's completed rental aggregate
func (s *Service) GetStats(ctx context.Context, id uuid.UUID) (*Stats, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.GetStats(ctx, id)
}
