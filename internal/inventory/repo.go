package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/branchstock/branchstock-backend/pkg/db/models"
)

// BranchRollup is a per-branch financial summary over a time window.
type BranchRollup struct {
	Branch            string  `json:"branch"`
	Revenue           float64 `json:"revenue"`
	TotalLossValue    float64 `json:"total_loss_value"`
	TotalExcessValue  float64 `json:"total_excess_value"`
	TotalAfterLossQty float64 `json:"total_after_loss_qty"`
	Count             int64   `json:"count"`
}

// Repository exposes inventory persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an inventory repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Insert persists a new movement and returns the stored row.
func (r *Repository) Insert(ctx context.Context, rec *models.InventoryRecord) (*models.InventoryRecord, error) {
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return nil, err
	}
	return rec, nil
}

// FindByID loads a movement by its UUID. A nil record with a nil error means
// the row does not exist.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.InventoryRecord, error) {
	var rec models.InventoryRecord
	if err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// Aggregate sums movements grouped by branch over the half-open window
// [start, end). An empty branch aggregates every branch.
func (r *Repository) Aggregate(ctx context.Context, start, end time.Time, branch string) ([]BranchRollup, error) {
	query := r.db.WithContext(ctx).
		Model(&models.InventoryRecord{}).
		Select(`branch,
			COALESCE(SUM(deliver_price * after_loss), 0) AS revenue,
			COALESCE(SUM(receive_price * loss), 0) AS total_loss_value,
			COALESCE(SUM(deliver_price * excess), 0) AS total_excess_value,
			COALESCE(SUM(after_loss), 0) AS total_after_loss_qty,
			COUNT(*) AS count`).
		Where("created_at >= ? AND created_at < ?", start, end)

	if branch != "" {
		query = query.Where("branch = ?", branch)
	}

	var rollups []BranchRollup
	if err := query.Group("branch").Scan(&rollups).Error; err != nil {
		return nil, err
	}
	return rollups, nil
}
