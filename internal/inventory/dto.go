package inventory

import (
	"time"

	"github.com/google/uuid"

	"github.com/branchstock/branchstock-backend/pkg/db/models"
)

// CreateRecordRequest is the payload for recording an inventory movement.
// Loss and excess default to zero; after_loss is derived server-side when
// the client does not supply it.
type CreateRecordRequest struct {
	ItemName     string   `json:"item_name" validate:"required,min=1,max=128"`
	Quantity     *float64 `json:"quantity" validate:"required,gte=0"`
	ReceivePrice *float64 `json:"receive_price" validate:"required,gte=0"`
	DeliverPrice *float64 `json:"deliver_price" validate:"required,gte=0"`
	Loss         *float64 `json:"loss,omitempty" validate:"omitempty,gte=0"`
	Excess       *float64 `json:"excess,omitempty" validate:"omitempty,gte=0"`
	AfterLoss    *float64 `json:"after_loss,omitempty" validate:"omitempty,gte=0"`
	Shift        string   `json:"shift" validate:"required,oneof=morning evening"`
	Branch       string   `json:"branch,omitempty" validate:"omitempty,min=1,max=64"`
}

// RecordDTO is the transport shape of a stored movement.
type RecordDTO struct {
	ID           uuid.UUID    `json:"id"`
	ItemName     string       `json:"item_name"`
	Quantity     float64      `json:"quantity"`
	ReceivePrice float64      `json:"receive_price"`
	DeliverPrice float64      `json:"deliver_price"`
	Loss         float64      `json:"loss"`
	Excess       float64      `json:"excess"`
	AfterLoss    float64      `json:"after_loss"`
	Shift        models.Shift `json:"shift"`
	Branch       string       `json:"branch"`
	CreatedBy    uuid.UUID    `json:"created_by"`
	CreatedAt    time.Time    `json:"created_at"`
}

func FromModel(rec *models.InventoryRecord) *RecordDTO {
	if rec == nil {
		return nil
	}
	return &RecordDTO{
		ID:           rec.ID,
		ItemName:     rec.ItemName,
		Quantity:     rec.Quantity,
		ReceivePrice: rec.ReceivePrice,
		DeliverPrice: rec.DeliverPrice,
		Loss:         rec.Loss,
		Excess:       rec.Excess,
		AfterLoss:    rec.AfterLoss,
		Shift:        rec.Shift,
		Branch:       rec.Branch,
		CreatedBy:    rec.CreatedBy,
		CreatedAt:    rec.CreatedAt,
	}
}
