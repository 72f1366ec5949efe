package inventory

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/branchstock/branchstock-backend/pkg/db/models"
	pkgerrors "github.com/branchstock/branchstock-backend/pkg/errors"
)

type stubRecordRepo struct {
	records map[uuid.UUID]*models.InventoryRecord
	last    *models.InventoryRecord
}

func newStubRecordRepo() *stubRecordRepo {
	return &stubRecordRepo{records: map[uuid.UUID]*models.InventoryRecord{}}
}

func (s *stubRecordRepo) Insert(ctx context.Context, rec *models.InventoryRecord) (*models.InventoryRecord, error) {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	s.records[rec.ID] = rec
	s.last = rec
	return rec, nil
}

func (s *stubRecordRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.InventoryRecord, error) {
	return s.records[id], nil
}

func f(v float64) *float64 { return &v }

func sampleCaller(branch string, isAdmin bool) Caller {
	return Caller{UserID: uuid.New(), Branch: branch, IsAdmin: isAdmin}
}

func sampleCreateRequest() CreateRecordRequest {
	return CreateRecordRequest{
		ItemName:     "flour 25kg",
		Quantity:     f(100),
		ReceivePrice: f(8),
		DeliverPrice: f(12),
		Loss:         f(3),
		Excess:       f(1),
		Shift:        "morning",
	}
}

func TestCreateDerivesAfterLoss(t *testing.T) {
	repo := newStubRecordRepo()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	dto, err := svc.Create(context.Background(), sampleCaller("downtown", false), sampleCreateRequest())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	// 100 - 3 + 1
	if dto.AfterLoss != 98 {
		t.Fatalf("expected after_loss 98, got %v", dto.AfterLoss)
	}
	if dto.Branch != "downtown" {
		t.Fatalf("expected caller branch, got %s", dto.Branch)
	}
}

func TestCreateDefaultsLossAndExcessToZero(t *testing.T) {
	repo := newStubRecordRepo()
	svc, _ := NewService(repo)

	req := sampleCreateRequest()
	req.Loss = nil
	req.Excess = nil

	dto, err := svc.Create(context.Background(), sampleCaller("downtown", false), req)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if dto.AfterLoss != 100 {
		t.Fatalf("expected after_loss 100, got %v", dto.AfterLoss)
	}
}

func TestCreateHonorsExplicitAfterLoss(t *testing.T) {
	repo := newStubRecordRepo()
	svc, _ := NewService(repo)

	req := sampleCreateRequest()
	req.AfterLoss = f(90)

	dto, err := svc.Create(context.Background(), sampleCaller("downtown", false), req)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if dto.AfterLoss != 90 {
		t.Fatalf("expected after_loss 90, got %v", dto.AfterLoss)
	}
}

func TestCreateRejectsInvalidShift(t *testing.T) {
	repo := newStubRecordRepo()
	svc, _ := NewService(repo)

	req := sampleCreateRequest()
	req.Shift = "overnight"

	_, err := svc.Create(context.Background(), sampleCaller("downtown", false), req)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateStampsCallerIdentity(t *testing.T) {
	repo := newStubRecordRepo()
	svc, _ := NewService(repo)
	caller := sampleCaller("harbor", false)

	if _, err := svc.Create(context.Background(), caller, sampleCreateRequest()); err != nil {
		t.Fatalf("create: %v", err)
	}
	if repo.last.CreatedBy != caller.UserID {
		t.Fatalf("expected created_by %s, got %s", caller.UserID, repo.last.CreatedBy)
	}
	if repo.last.Branch != "harbor" {
		t.Fatalf("expected branch harbor, got %s", repo.last.Branch)
	}
}

func TestCreateHonorsExplicitBranch(t *testing.T) {
	repo := newStubRecordRepo()
	svc, _ := NewService(repo)

	req := sampleCreateRequest()
	req.Branch = "harbor"

	dto, err := svc.Create(context.Background(), sampleCaller("downtown", false), req)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if dto.Branch != "harbor" {
		t.Fatalf("expected harbor, got %s", dto.Branch)
	}
}

func TestGetBranchVisibility(t *testing.T) {
	repo := newStubRecordRepo()
	svc, _ := NewService(repo)
	owner := sampleCaller("downtown", false)

	dto, err := svc.Create(context.Background(), owner, sampleCreateRequest())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// same branch sees the row
	if _, err := svc.Get(context.Background(), sampleCaller("downtown", false), dto.ID); err != nil {
		t.Fatalf("same-branch get: %v", err)
	}

	// other branch is refused
	_, err = svc.Get(context.Background(), sampleCaller("harbor", false), dto.ID)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}

	// admins see everything
	if _, err := svc.Get(context.Background(), sampleCaller("harbor", true), dto.ID); err != nil {
		t.Fatalf("admin get: %v", err)
	}
}

func TestGetMissingRecord(t *testing.T) {
	repo := newStubRecordRepo()
	svc, _ := NewService(repo)

	_, err := svc.Get(context.Background(), sampleCaller("downtown", true), uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
