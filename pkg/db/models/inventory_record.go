package models

import (
	"time"

	"github.com/google/uuid"
)

// Shift identifies which half of the working day a movement belongs to.
type Shift string

const (
	ShiftMorning Shift = "morning"
	ShiftEvening Shift = "evening"
)

// IsValid reports whether the shift is one of the supported values.
func (s Shift) IsValid() bool {
	return s == ShiftMorning || s == ShiftEvening
}

// InventoryRecord is one append-only inventory movement. AfterLoss is fixed
// at creation time (quantity - loss + excess when not supplied) and rows are
// never updated afterwards.
type InventoryRecord struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ItemName     string    `gorm:"column:item_name;type:text;not null"`
	Quantity     float64   `gorm:"column:quantity;not null"`
	ReceivePrice float64   `gorm:"column:receive_price;not null"`
	DeliverPrice float64   `gorm:"column:deliver_price;not null"`
	Loss         float64   `gorm:"column:loss;not null;default:0"`
	Excess       float64   `gorm:"column:excess;not null;default:0"`
	AfterLoss    float64   `gorm:"column:after_loss;not null"`
	Shift        Shift     `gorm:"column:shift;type:text;not null"`
	Branch       string    `gorm:"column:branch;type:text;not null"`
	CreatedBy    uuid.UUID `gorm:"type:uuid;column:created_by;not null"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}
