package society

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/societyhub/backend/internal/domain/identity"
	"github.com/societyhub/backend/internal/domain/shared"
	"github.com/societyhub/backend/internal/domain/shared/valueobject"
	"github.com/societyhub/backend/internal/domain/society"
)

// SocietyService provides application-level society operations
type SocietyService struct {
	societyRepo society.SocietyRepository
	flatRepo    society.FlatRepository
}

// NewSocietyService creates a new SocietyService
func NewSocietyService(societyRepo society.SocietyRepository, flatRepo society.FlatRepository) *SocietyService {
	return &SocietyService{
		societyRepo: societyRepo,
		flatRepo:    flatRepo,
	}
}

// SocietyResponse represents a society in API responses
type SocietyResponse struct {
	ID                uuid.UUID       `json:"id"`
	Name              string          `json:"name"`
	Address           string          `json:"address"`
	City              string          `json:"city"`
	State             string          `json:"state"`
	Pincode           string          `json:"pincode"`
	TotalFlats        int             `json:"total_flats"`
	MaintenanceAmount decimal.Decimal `json:"maintenance_amount"`
	BillingCycle      string          `json:"billing_cycle"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// CreateSocietyRequest represents a request to create a society
type CreateSocietyRequest struct {
	Name              string          `json:"name" binding:"required"`
	Address           string          `json:"address" binding:"required"`
	City              string          `json:"city" binding:"required"`
	State             string          `json:"state" binding:"required"`
	Pincode           string          `json:"pincode" binding:"required"`
	TotalFlats        int             `json:"total_flats" binding:"required"`
	MaintenanceAmount decimal.Decimal `json:"maintenance_amount" binding:"required"`
	BillingCycle      string          `json:"billing_cycle"`
}

// UpdateSocietyRequest represents a request to update a society
type UpdateSocietyRequest struct {
	Name              string          `json:"name" binding:"required"`
	Address           string          `json:"address" binding:"required"`
	City              string          `json:"city" binding:"required"`
	State             string          `json:"state" binding:"required"`
	Pincode           string          `json:"pincode" binding:"required"`
	TotalFlats        int             `json:"total_flats" binding:"required"`
	MaintenanceAmount decimal.Decimal `json:"maintenance_amount" binding:"required"`
	BillingCycle      string          `json:"billing_cycle"`
}

// Create creates a new society. Admin only.
func (s *SocietyService) Create(ctx context.Context, actor identity.Actor, req CreateSocietyRequest) (*SocietyResponse, error) {
	if err := identity.Authorize(actor, identity.OpSocietyCreate, uuid.Nil); err != nil {
		return nil, err
	}

	soc, err := society.NewSociety(req.Name, req.Address, req.City, req.State, req.Pincode,
		req.TotalFlats, valueobject.NewMoneyINR(req.MaintenanceAmount))
	if err != nil {
		return nil, err
	}
	if req.BillingCycle != "" {
		if err := soc.SetBillingCycle(society.BillingCycle(req.BillingCycle)); err != nil {
			return nil, err
		}
	}

	if err := s.societyRepo.Save(ctx, soc); err != nil {
		return nil, err
	}
	return toSocietyResponse(soc), nil
}

// Get returns a society by ID
func (s *SocietyService) Get(ctx context.Context, actor identity.Actor, id uuid.UUID) (*SocietyResponse, error) {
	if err := identity.Authorize(actor, identity.OpSocietyRead, id); err != nil {
		return nil, err
	}

	soc, err := s.findSociety(ctx, id)
	if err != nil {
		return nil, err
	}
	return toSocietyResponse(soc), nil
}

// List returns all societies. Admin only; society-scoped actors see their own
// society via Get.
func (s *SocietyService) List(ctx context.Context, actor identity.Actor) ([]SocietyResponse, error) {
	if actor.Role != identity.RoleAdmin {
		return nil, shared.ErrUnauthorized
	}

	societies, err := s.societyRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]SocietyResponse, len(societies))
	for i := range societies {
		responses[i] = *toSocietyResponse(&societies[i])
	}
	return responses, nil
}

// Update updates a society's details
func (s *SocietyService) Update(ctx context.Context, actor identity.Actor, id uuid.UUID, req UpdateSocietyRequest) (*SocietyResponse, error) {
	if err := identity.Authorize(actor, identity.OpSocietyUpdate, id); err != nil {
		return nil, err
	}

	soc, err := s.findSociety(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := soc.Update(req.Name, req.Address, req.City, req.State, req.Pincode,
		req.TotalFlats, valueobject.NewMoneyINR(req.MaintenanceAmount)); err != nil {
		return nil, err
	}
	if req.BillingCycle != "" {
		if err := soc.SetBillingCycle(society.BillingCycle(req.BillingCycle)); err != nil {
			return nil, err
		}
	}

	if err := s.societyRepo.Save(ctx, soc); err != nil {
		return nil, err
	}
	return toSocietyResponse(soc), nil
}

// Delete removes a society and everything it owns. Admin only.
func (s *SocietyService) Delete(ctx context.Context, actor identity.Actor, id uuid.UUID) error {
	if err := identity.Authorize(actor, identity.OpSocietyDelete, id); err != nil {
		return err
	}

	if _, err := s.findSociety(ctx, id); err != nil {
		return err
	}
	return s.societyRepo.Delete(ctx, id)
}

func (s *SocietyService) findSociety(ctx context.Context, id uuid.UUID) (*society.Society, error) {
	soc, err := s.societyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if soc == nil {
		return nil, shared.NewNotFoundError("Society not found")
	}
	return soc, nil
}

func toSocietyResponse(soc *society.Society) *SocietyResponse {
	return &SocietyResponse{
		ID:                soc.ID,
		Name:              soc.Name,
		Address:           soc.Address,
		City:              soc.City,
		State:             soc.State,
		Pincode:           soc.Pincode,
		TotalFlats:        soc.TotalFlats,
		MaintenanceAmount: soc.MaintenanceAmount.Amount(),
		BillingCycle:      string(soc.BillingCycle),
		CreatedAt:         soc.CreatedAt,
		UpdatedAt:         soc.UpdatedAt,
	}
}
