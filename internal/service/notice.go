package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/iliyamo/hostel-management/internal/model"
	"github.com/iliyamo/hostel-management/internal/repository"
)

type NoticeService struct {
	base
	notices repository.Store[model.Notice]
}

// Post publishes a notice. PostedBy defaults to the acting operator.
func (s *NoticeService) Post(ctx context.Context, n model.Notice) (model.Notice, error) {
	n.ID = 0
	n.Title = strings.TrimSpace(n.Title)
	if n.PostedBy == "" {
		n.PostedBy = ActorFrom(ctx)
		if n.PostedBy == "System" {
			n.PostedBy = "Admin"
		}
	}
	if n.Priority == "" {
		n.Priority = model.NoticeMedium
	}
	n.PostedAt = s.now()
	n.IsActive = true
	if err := check(n); err != nil {
		return model.Notice{}, err
	}
	err := s.write(ctx, func() error {
		var err error
		n, err = s.notices.Add(ctx, n)
		return err
	}, s.notices)
	if err != nil {
		return model.Notice{}, err
	}
	s.record(ctx, "Notice", "Post", fmt.Sprintf("%q (%s)", n.Title, n.Priority))
	return n, nil
}

func (s *NoticeService) Get(ctx context.Context, id int) (model.Notice, error) {
	n, err := s.notices.Get(ctx, id)
	if err != nil {
		return model.Notice{}, notFound(err, ErrNoticeNotFound, id)
	}
	return n, nil
}

// Update edits a notice; the posting time is kept.
func (s *NoticeService) Update(ctx context.Context, n model.Notice) (model.Notice, error) {
	n.Title = strings.TrimSpace(n.Title)
	err := s.write(ctx, func() error {
		cur, err := s.Get(ctx, n.ID)
		if err != nil {
			return err
		}
		n.PostedAt = cur.PostedAt
		if n.PostedBy == "" {
			n.PostedBy = cur.PostedBy
		}
		if err := check(n); err != nil {
			return err
		}
		return s.notices.Update(ctx, n)
	}, s.notices)
	if err != nil {
		return model.Notice{}, err
	}
	s.record(ctx, "Notice", "Update", fmt.Sprintf("%q", n.Title))
	return n, nil
}

func (s *NoticeService) Deactivate(ctx context.Context, id int) error {
	var n model.Notice
	err := s.write(ctx, func() error {
		var err error
		if n, err = s.Get(ctx, id); err != nil {
			return err
		}
		n.IsActive = false
		return s.notices.Update(ctx, n)
	}, s.notices)
	if err != nil {
		return err
	}
	s.record(ctx, "Notice", "Deactivate", fmt.Sprintf("%q", n.Title))
	return nil
}

// ListActive returns the notices visible at now, most important first and
// newest first within a priority.
func (s *NoticeService) ListActive(ctx context.Context, now time.Time) ([]model.Notice, error) {
	out, err := filter(ctx, s.notices, func(n model.Notice) bool { return n.VisibleAt(now) })
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool {
		if pi, pj := out[i].Priority.Rank(), out[j].Priority.Rank(); pi != pj {
			return pi > pj
		}
		return out[i].PostedAt.After(out[j].PostedAt)
	})
	return out, nil
}

func (s *NoticeService) List(ctx context.Context) ([]model.Notice, error) {
	return s.notices.List(ctx)
}
