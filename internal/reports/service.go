package reports

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/branchstock/branchstock-backend/internal/inventory"
	pkgerrors "github.com/branchstock/branchstock-backend/pkg/errors"
)

// ReportDTO is one rollup response. Branch is the effective filter applied
// after visibility rules; empty means all branches.
type ReportDTO struct {
	Period  Period                   `json:"period"`
	Start   time.Time                `json:"start"`
	End     time.Time                `json:"end"`
	Branch  string                   `json:"branch,omitempty"`
	Results []inventory.BranchRollup `json:"results"`
}

// Service defines the behavior needed by the reports controller.
type Service interface {
	Report(ctx context.Context, caller inventory.Caller, period Period, anchor, branch string) (*ReportDTO, error)
}

type aggregator interface {
	Aggregate(ctx context.Context, start, end time.Time, branch string) ([]inventory.BranchRollup, error)
}

type service struct {
	repo aggregator
	loc  *time.Location
	now  func() time.Time
}

// NewService constructs a reports service. loc defaults to UTC.
func NewService(repo aggregator, loc *time.Location) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("inventory repository is required")
	}
	if loc == nil {
		loc = time.UTC
	}
	return &service{repo: repo, loc: loc, now: time.Now}, nil
}

// Report aggregates movements for the requested window. Non-admin callers
// are always pinned to their own branch; a branch query parameter from them
// is ignored rather than rejected. Admins may narrow to one branch or see
// every branch at once.
func (s *service) Report(ctx context.Context, caller inventory.Caller, period Period, anchor, branch string) (*ReportDTO, error) {
	if !period.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown report period")
	}

	effectiveBranch := strings.TrimSpace(branch)
	if !caller.IsAdmin {
		effectiveBranch = caller.Branch
	}

	start, end := ResolveWindow(period, strings.TrimSpace(anchor), s.now(), s.loc)

	rollups, err := s.repo.Aggregate(ctx, start, end, effectiveBranch)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "aggregate records")
	}
	if rollups == nil {
		rollups = []inventory.BranchRollup{}
	}

	return &ReportDTO{
		Period:  period,
		Start:   start,
		End:     end,
		Branch:  effectiveBranch,
		Results: rollups,
	}, nil
}
