package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/iliyamo/hostel-management/internal/model"
	"github.com/iliyamo/hostel-management/internal/repository"
)

type RoomService struct {
	base
	rooms    repository.Store[model.Room]
	students repository.Store[model.Student]
}

// Create adds an active, empty room.
func (s *RoomService) Create(ctx context.Context, r model.Room) (model.Room, error) {
	r.ID = 0
	r.RoomNumber = strings.TrimSpace(r.RoomNumber)
	r.CurrentOccupancy = 0
	r.IsActive = true
	if err := check(r); err != nil {
		return model.Room{}, err
	}
	err := s.write(ctx, func() error {
		if err := s.uniqueNumber(ctx, r.RoomNumber, 0); err != nil {
			return err
		}
		var err error
		r, err = s.rooms.Add(ctx, r)
		return err
	}, s.rooms)
	if err != nil {
		return model.Room{}, err
	}
	s.record(ctx, "Room", "Create", fmt.Sprintf("Created room %s (%s, %d beds)", r.RoomNumber, r.RoomType, r.Capacity))
	return r, nil
}

func (s *RoomService) Get(ctx context.Context, id int) (model.Room, error) {
	r, err := s.rooms.Get(ctx, id)
	if err != nil {
		return model.Room{}, notFound(err, ErrRoomNotFound, id)
	}
	return r, nil
}

// Update changes the room's details. Occupancy is owned by the assignment
// operations and is kept; a renamed room is renamed on its occupants too.
func (s *RoomService) Update(ctx context.Context, r model.Room) (model.Room, error) {
	r.RoomNumber = strings.TrimSpace(r.RoomNumber)
	err := s.write(ctx, func() error {
		cur, err := s.Get(ctx, r.ID)
		if err != nil {
			return err
		}
		r.CurrentOccupancy = cur.CurrentOccupancy
		if err := check(r); err != nil {
			return err
		}
		if r.Capacity < r.CurrentOccupancy {
			return fmt.Errorf("%w (%d occupants)", ErrCapacityBelowOccupancy, r.CurrentOccupancy)
		}
		if err := s.uniqueNumber(ctx, r.RoomNumber, r.ID); err != nil {
			return err
		}
		if err := s.rooms.Update(ctx, r); err != nil {
			return err
		}
		if r.RoomNumber == cur.RoomNumber {
			return nil
		}
		all, err := s.students.List(ctx)
		if err != nil {
			return err
		}
		for _, st := range all {
			if st.InRoom(r.ID) {
				st.RoomNumber = r.RoomNumber
				if err := s.students.Update(ctx, st); err != nil {
					return err
				}
			}
		}
		return nil
	}, s.rooms, s.students)
	if err != nil {
		return model.Room{}, err
	}
	s.record(ctx, "Room", "Update", fmt.Sprintf("Updated room %s", r.RoomNumber))
	return r, nil
}

// Delete removes an empty room.
func (s *RoomService) Delete(ctx context.Context, id int) error {
	var r model.Room
	err := s.write(ctx, func() error {
		var err error
		if r, err = s.Get(ctx, id); err != nil {
			return err
		}
		if r.CurrentOccupancy > 0 {
			return fmt.Errorf("%w (room %s has %d occupants)", ErrRoomOccupied, r.RoomNumber, r.CurrentOccupancy)
		}
		return s.rooms.Delete(ctx, id)
	}, s.rooms)
	if err != nil {
		return err
	}
	s.record(ctx, "Room", "Delete", fmt.Sprintf("Deleted room %s", r.RoomNumber))
	return nil
}

func (s *RoomService) List(ctx context.Context) ([]model.Room, error) { return s.rooms.List(ctx) }

// ListAvailable returns active rooms with at least one free bed.
func (s *RoomService) ListAvailable(ctx context.Context) ([]model.Room, error) {
	return filter(ctx, s.rooms, model.Room.Available)
}

func (s *RoomService) ListFull(ctx context.Context) ([]model.Room, error) {
	return filter(ctx, s.rooms, model.Room.IsFull)
}

// HasCapacity reports whether the room exists and has a free bed.
func (s *RoomService) HasCapacity(ctx context.Context, id int) (bool, error) {
	r, err := s.Get(ctx, id)
	if err != nil {
		return false, err
	}
	return !r.IsFull(), nil
}

// TotalCapacity sums the beds of active rooms.
func (s *RoomService) TotalCapacity(ctx context.Context) (int, error) {
	return s.sumActive(ctx, func(r model.Room) int { return r.Capacity })
}

// TotalOccupancy sums the occupants of active rooms.
func (s *RoomService) TotalOccupancy(ctx context.Context) (int, error) {
	return s.sumActive(ctx, func(r model.Room) int { return r.CurrentOccupancy })
}

// CountByType counts rooms per room type.
func (s *RoomService) CountByType(ctx context.Context) (map[model.RoomType]int, error) {
	all, err := s.rooms.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[model.RoomType]int)
	for _, r := range all {
		out[r.RoomType]++
	}
	return out, nil
}

func (s *RoomService) sumActive(ctx context.Context, f func(model.Room) int) (int, error) {
	all, err := s.rooms.List(ctx)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, r := range all {
		if r.IsActive {
			n += f(r)
		}
	}
	return n, nil
}

func (s *RoomService) uniqueNumber(ctx context.Context, number string, selfID int) error {
	all, err := s.rooms.List(ctx)
	if err != nil {
		return err
	}
	for _, r := range all {
		if r.ID != selfID && strings.EqualFold(r.RoomNumber, number) {
			return fmt.Errorf("%w (%s)", ErrDuplicateRoomNumber, number)
		}
	}
	return nil
}
