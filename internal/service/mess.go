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

type MessService struct {
	base
	menus repository.Store[model.MessMenu]
}

func (s *MessService) Add(ctx context.Context, m model.MessMenu) (model.MessMenu, error) {
	m.ID = 0
	m.Items = strings.TrimSpace(m.Items)
	m.IsActive = true
	if err := check(m); err != nil {
		return model.MessMenu{}, err
	}
	err := s.write(ctx, func() error {
		var err error
		m, err = s.menus.Add(ctx, m)
		return err
	}, s.menus)
	if err != nil {
		return model.MessMenu{}, err
	}
	s.record(ctx, "Mess", "Add", fmt.Sprintf("%s %s: %s", m.Day, m.MealType, m.Items))
	return m, nil
}

func (s *MessService) Get(ctx context.Context, id int) (model.MessMenu, error) {
	m, err := s.menus.Get(ctx, id)
	if err != nil {
		return model.MessMenu{}, notFound(err, ErrMenuNotFound, id)
	}
	return m, nil
}

func (s *MessService) Update(ctx context.Context, m model.MessMenu) (model.MessMenu, error) {
	m.Items = strings.TrimSpace(m.Items)
	if err := check(m); err != nil {
		return model.MessMenu{}, err
	}
	err := s.write(ctx, func() error {
		if _, err := s.Get(ctx, m.ID); err != nil {
			return err
		}
		return s.menus.Update(ctx, m)
	}, s.menus)
	if err != nil {
		return model.MessMenu{}, err
	}
	s.record(ctx, "Mess", "Update", fmt.Sprintf("%s %s: %s", m.Day, m.MealType, m.Items))
	return m, nil
}

func (s *MessService) Delete(ctx context.Context, id int) error {
	err := s.write(ctx, func() error {
		if _, err := s.Get(ctx, id); err != nil {
			return err
		}
		return s.menus.Delete(ctx, id)
	}, s.menus)
	if err != nil {
		return err
	}
	s.record(ctx, "Mess", "Delete", fmt.Sprintf("Menu item #%d", id))
	return nil
}

// ByDay returns the active menu of one day, breakfast first.
func (s *MessService) ByDay(ctx context.Context, day time.Weekday) ([]model.MessMenu, error) {
	out, err := filter(ctx, s.menus, func(m model.MessMenu) bool { return m.IsActive && m.Day == day })
	if err != nil {
		return nil, err
	}
	sortMenu(out)
	return out, nil
}

// Week returns the active menu ordered by weekday (Sunday first) and meal.
func (s *MessService) Week(ctx context.Context) ([]model.MessMenu, error) {
	out, err := filter(ctx, s.menus, func(m model.MessMenu) bool { return m.IsActive })
	if err != nil {
		return nil, err
	}
	sortMenu(out)
	return out, nil
}

func sortMenu(ms []model.MessMenu) {
	sort.SliceStable(ms, func(i, j int) bool {
		if ms[i].Day != ms[j].Day {
			return ms[i].Day < ms[j].Day
		}
		return ms[i].MealType.Rank() < ms[j].MealType.Rank()
	})
}
