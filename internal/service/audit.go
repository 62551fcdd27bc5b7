package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/iliyamo/hostel-management/internal/model"
	"github.com/iliyamo/hostel-management/internal/repository"
)

// AuditService keeps the append-only trail of administrative actions. It
// does not take the shared write lock, so other services may log while
// holding it.
type AuditService struct {
	logs repository.Store[model.AuditLog]
	now  func() time.Time
}

// Log appends an entry stamped with the current time and persists it.
func (s *AuditService) Log(ctx context.Context, module, action, performedBy, details string) error {
	if _, err := s.logs.Add(ctx, model.AuditLog{
		Action:      action,
		Module:      module,
		PerformedBy: performedBy,
		Timestamp:   s.now(),
		Details:     details,
	}); err != nil {
		return err
	}
	return s.logs.Persist(ctx)
}

// Recent returns the n newest entries.
func (s *AuditService) Recent(ctx context.Context, n int) ([]model.AuditLog, error) {
	all, err := s.logs.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].Timestamp.After(all[j].Timestamp) })
	if n >= 0 && n < len(all) {
		all = all[:n]
	}
	return all, nil
}

// ByModule returns the entries of one module, compared case-insensitively.
func (s *AuditService) ByModule(ctx context.Context, module string) ([]model.AuditLog, error) {
	return filter(ctx, s.logs, func(l model.AuditLog) bool { return strings.EqualFold(l.Module, module) })
}

func (s *AuditService) List(ctx context.Context) ([]model.AuditLog, error) {
	return s.logs.List(ctx)
}
