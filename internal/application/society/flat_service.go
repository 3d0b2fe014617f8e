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

// FlatService provides application-level flat operations
type FlatService struct {
	societyRepo society.SocietyRepository
	flatRepo    society.FlatRepository
}

// NewFlatService creates a new FlatService
func NewFlatService(societyRepo society.SocietyRepository, flatRepo society.FlatRepository) *FlatService {
	return &FlatService{
		societyRepo: societyRepo,
		flatRepo:    flatRepo,
	}
}

// FlatResponse represents a flat in API responses
type FlatResponse struct {
	ID                uuid.UUID        `json:"id"`
	SocietyID         uuid.UUID        `json:"society_id"`
	FlatNumber        string           `json:"flat_number"`
	Block             *string          `json:"block,omitempty"`
	Floor             *int             `json:"floor,omitempty"`
	SqFeet            *int             `json:"sq_feet,omitempty"`
	MaintenanceAmount *decimal.Decimal `json:"maintenance_amount,omitempty"`
	OwnerName         string           `json:"owner_name,omitempty"`
	OwnerPhone        string           `json:"owner_phone,omitempty"`
	OwnerEmail        string           `json:"owner_email,omitempty"`
	IsRented          bool             `json:"is_rented"`
	TenantName        string           `json:"tenant_name,omitempty"`
	TenantPhone       string           `json:"tenant_phone,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// CreateFlatRequest represents a request to create a flat
type CreateFlatRequest struct {
	FlatNumber        string           `json:"flat_number" binding:"required"`
	Block             *string          `json:"block"`
	Floor             *int             `json:"floor"`
	SqFeet            *int             `json:"sq_feet"`
	MaintenanceAmount *decimal.Decimal `json:"maintenance_amount"`
	OwnerName         string           `json:"owner_name"`
	OwnerPhone        string           `json:"owner_phone"`
	OwnerEmail        string           `json:"owner_email"`
	TenantName        string           `json:"tenant_name"`
	TenantPhone       string           `json:"tenant_phone"`
}

// UpdateFlatRequest represents a request to update a flat
type UpdateFlatRequest struct {
	FlatNumber        string           `json:"flat_number" binding:"required"`
	Block             *string          `json:"block"`
	Floor             *int             `json:"floor"`
	SqFeet            *int             `json:"sq_feet"`
	MaintenanceAmount *decimal.Decimal `json:"maintenance_amount"`
	OwnerName         string           `json:"owner_name"`
	OwnerPhone        string           `json:"owner_phone"`
	OwnerEmail        string           `json:"owner_email"`
	TenantName        string           `json:"tenant_name"`
	TenantPhone       string           `json:"tenant_phone"`
}

// Create adds a flat to a society. The (society, number, block) tuple must be
// unique; a flat without a block only collides with other block-less flats.
func (s *FlatService) Create(ctx context.Context, actor identity.Actor, societyID uuid.UUID, req CreateFlatRequest) (*FlatResponse, error) {
	if err := identity.Authorize(actor, identity.OpFlatCreate, societyID); err != nil {
		return nil, err
	}

	soc, err := s.societyRepo.FindByID(ctx, societyID)
	if err != nil {
		return nil, err
	}
	if soc == nil {
		return nil, shared.NewNotFoundError("Society not found")
	}

	exists, err := s.flatRepo.ExistsByNumber(ctx, societyID, req.FlatNumber, req.Block)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewConflictError("A flat with this number already exists in the block")
	}

	flat, err := society.NewFlat(societyID, req.FlatNumber, req.Block)
	if err != nil {
		return nil, err
	}
	if err := applyFlatDetails(flat, req.Floor, req.SqFeet, req.MaintenanceAmount,
		req.OwnerName, req.OwnerPhone, req.OwnerEmail, req.TenantName, req.TenantPhone); err != nil {
		return nil, err
	}

	if err := s.flatRepo.Save(ctx, flat); err != nil {
		return nil, err
	}
	return toFlatResponse(flat), nil
}

// Get returns a flat by ID
func (s *FlatService) Get(ctx context.Context, actor identity.Actor, id uuid.UUID) (*FlatResponse, error) {
	flat, err := s.findFlat(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := identity.Authorize(actor, identity.OpFlatRead, flat.SocietyID); err != nil {
		return nil, err
	}
	return toFlatResponse(flat), nil
}

// List returns all flats of a society
func (s *FlatService) List(ctx context.Context, actor identity.Actor, societyID uuid.UUID) ([]FlatResponse, error) {
	if err := identity.Authorize(actor, identity.OpFlatRead, societyID); err != nil {
		return nil, err
	}

	flats, err := s.flatRepo.FindBySociety(ctx, societyID)
	if err != nil {
		return nil, err
	}
	responses := make([]FlatResponse, len(flats))
	for i := range flats {
		responses[i] = *toFlatResponse(&flats[i])
	}
	return responses, nil
}

// Update updates a flat's details
func (s *FlatService) Update(ctx context.Context, actor identity.Actor, id uuid.UUID, req UpdateFlatRequest) (*FlatResponse, error) {
	flat, err := s.findFlat(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := identity.Authorize(actor, identity.OpFlatUpdate, flat.SocietyID); err != nil {
		return nil, err
	}

	if req.FlatNumber != flat.FlatNumber || !sameBlock(req.Block, flat.Block) {
		exists, err := s.flatRepo.ExistsByNumber(ctx, flat.SocietyID, req.FlatNumber, req.Block)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewConflictError("A flat with this number already exists in the block")
		}
		if err := flat.SetNumber(req.FlatNumber, req.Block); err != nil {
			return nil, err
		}
	}

	if req.MaintenanceAmount == nil {
		flat.ClearMaintenanceOverride()
	}
	if err := applyFlatDetails(flat, req.Floor, req.SqFeet, req.MaintenanceAmount,
		req.OwnerName, req.OwnerPhone, req.OwnerEmail, req.TenantName, req.TenantPhone); err != nil {
		return nil, err
	}

	if err := s.flatRepo.Save(ctx, flat); err != nil {
		return nil, err
	}
	return toFlatResponse(flat), nil
}

// Delete removes a flat
func (s *FlatService) Delete(ctx context.Context, actor identity.Actor, id uuid.UUID) error {
	flat, err := s.findFlat(ctx, id)
	if err != nil {
		return err
	}
	if err := identity.Authorize(actor, identity.OpFlatDelete, flat.SocietyID); err != nil {
		return err
	}
	return s.flatRepo.Delete(ctx, id)
}

func (s *FlatService) findFlat(ctx context.Context, id uuid.UUID) (*society.Flat, error) {
	flat, err := s.flatRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if flat == nil {
		return nil, shared.NewNotFoundError("Flat not found")
	}
	return flat, nil
}

func applyFlatDetails(flat *society.Flat, floor, sqFeet *int, maintenance *decimal.Decimal,
	ownerName, ownerPhone, ownerEmail, tenantName, tenantPhone string) error {
	flat.Floor = floor
	flat.SqFeet = sqFeet
	if maintenance != nil {
		if err := flat.SetMaintenanceOverride(valueobject.NewMoneyINR(*maintenance)); err != nil {
			return err
		}
	}
	if err := flat.SetOwner(ownerName, ownerPhone, ownerEmail); err != nil {
		return err
	}
	return flat.SetTenant(tenantName, tenantPhone)
}

func sameBlock(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func toFlatResponse(flat *society.Flat) *FlatResponse {
	resp := &FlatResponse{
		ID:          flat.ID,
		SocietyID:   flat.SocietyID,
		FlatNumber:  flat.FlatNumber,
		Block:       flat.Block,
		Floor:       flat.Floor,
		SqFeet:      flat.SqFeet,
		OwnerName:   flat.OwnerName,
		OwnerPhone:  flat.OwnerPhone,
		OwnerEmail:  flat.OwnerEmail,
		IsRented:    flat.IsRented,
		TenantName:  flat.TenantName,
		TenantPhone: flat.TenantPhone,
		CreatedAt:   flat.CreatedAt,
		UpdatedAt:   flat.UpdatedAt,
	}
	if flat.MaintenanceAmount != nil {
		amount := flat.MaintenanceAmount.Amount()
		resp.MaintenanceAmount = &amount
	}
	return resp
}
