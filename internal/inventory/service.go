package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/branchstock/branchstock-backend/pkg/db/models"
	pkgerrors "github.com/branchstock/branchstock-backend/pkg/errors"
)

// Caller identifies who is performing an inventory operation.
type Caller struct {
	UserID  uuid.UUID
	Branch  string
	IsAdmin bool
}

// Service defines the behavior needed by the inventory controller.
type Service interface {
	Create(ctx context.Context, caller Caller, req CreateRecordRequest) (*RecordDTO, error)
	Get(ctx context.Context, caller Caller, id uuid.UUID) (*RecordDTO, error)
}

type recordRepository interface {
	Insert(ctx context.Context, rec *models.InventoryRecord) (*models.InventoryRecord, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.InventoryRecord, error)
}

type service struct {
	repo recordRepository
}

// NewService constructs an inventory service with the provided repository.
func NewService(repo recordRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("inventory repository is required")
	}
	return &service{repo: repo}, nil
}

// Create records a movement. The branch defaults to the caller's own branch
// when the body omits it. The after-loss quantity is derived as
// quantity - loss + excess unless the client supplied its own figure; once
// stored it never changes.
func (s *service) Create(ctx context.Context, caller Caller, req CreateRecordRequest) (*RecordDTO, error) {
	itemName := strings.TrimSpace(req.ItemName)
	if itemName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item_name is required")
	}

	shift := models.Shift(req.Shift)
	if !shift.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shift must be morning or evening")
	}

	if req.Quantity == nil || req.ReceivePrice == nil || req.DeliverPrice == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity, receive_price and deliver_price are required")
	}

	loss := 0.0
	if req.Loss != nil {
		loss = *req.Loss
	}
	excess := 0.0
	if req.Excess != nil {
		excess = *req.Excess
	}

	afterLoss := *req.Quantity - loss + excess
	if req.AfterLoss != nil {
		afterLoss = *req.AfterLoss
	}
	if afterLoss < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "after_loss cannot be negative")
	}

	branch := strings.TrimSpace(req.Branch)
	if branch == "" {
		branch = caller.Branch
	}

	rec := &models.InventoryRecord{
		ItemName:     itemName,
		Quantity:     *req.Quantity,
		ReceivePrice: *req.ReceivePrice,
		DeliverPrice: *req.DeliverPrice,
		Loss:         loss,
		Excess:       excess,
		AfterLoss:    afterLoss,
		Shift:        shift,
		Branch:       branch,
		CreatedBy:    caller.UserID,
	}

	stored, err := s.repo.Insert(ctx, rec)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "insert record")
	}
	return FromModel(stored), nil
}

// Get returns a single movement. Non-admin callers only see rows from their
// own branch.
func (s *service) Get(ctx context.Context, caller Caller, id uuid.UUID) (*RecordDTO, error) {
	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load record")
	}
	if rec == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "record not found")
	}
	if !caller.IsAdmin && rec.Branch != caller.Branch {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "forbidden")
	}
	return FromModel(rec), nil
}
