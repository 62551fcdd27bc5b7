package service

import (
	"context"
	"fmt"

	"github.com/iliyamo/hostel-management/internal/metrics"
	"github.com/iliyamo/hostel-management/internal/model"
	"github.com/iliyamo/hostel-management/internal/repository"
)

type FeeService struct {
	base
	fees     repository.Store[model.FeeStructure]
	payments *PaymentService
	students repository.Store[model.Student]
	rooms    repository.Store[model.Room]
}

func (s *FeeService) Create(ctx context.Context, f model.FeeStructure) (model.FeeStructure, error) {
	f.ID = 0
	f.IsActive = true
	if err := check(f); err != nil {
		return model.FeeStructure{}, err
	}
	err := s.write(ctx, func() error {
		var err error
		f, err = s.fees.Add(ctx, f)
		return err
	}, s.fees)
	if err != nil {
		return model.FeeStructure{}, err
	}
	s.record(ctx, "Fee", "Create", fmt.Sprintf("%s: Rs. %s monthly", f.RoomType, FormatAmount(f.TotalMonthly())))
	return f, nil
}

func (s *FeeService) Update(ctx context.Context, f model.FeeStructure) (model.FeeStructure, error) {
	if err := check(f); err != nil {
		return model.FeeStructure{}, err
	}
	err := s.write(ctx, func() error {
		if _, err := s.Get(ctx, f.ID); err != nil {
			return err
		}
		return s.fees.Update(ctx, f)
	}, s.fees)
	if err != nil {
		return model.FeeStructure{}, err
	}
	s.record(ctx, "Fee", "Update", fmt.Sprintf("%s fee structure #%d", f.RoomType, f.ID))
	return f, nil
}

func (s *FeeService) Get(ctx context.Context, id int) (model.FeeStructure, error) {
	f, err := s.fees.Get(ctx, id)
	if err != nil {
		return model.FeeStructure{}, notFound(err, ErrFeeNotFound, id)
	}
	return f, nil
}

func (s *FeeService) List(ctx context.Context) ([]model.FeeStructure, error) {
	return s.fees.List(ctx)
}

// ByRoomType returns the first active fee structure of a room type.
func (s *FeeService) ByRoomType(ctx context.Context, t model.RoomType) (model.FeeStructure, error) {
	all, err := s.fees.List(ctx)
	if err != nil {
		return model.FeeStructure{}, err
	}
	for _, f := range all {
		if f.RoomType == t && f.IsActive {
			return f, nil
		}
	}
	return model.FeeStructure{}, fmt.Errorf("%w (room type %s)", ErrFeeNotFound, t)
}

// GenerateMonthlyFees raises a Pending payment for every active student
// with a room whose room type has an active fee structure. Students that
// already have a payment for the period are skipped. It returns the number
// of payments created.
func (s *FeeService) GenerateMonthlyFees(ctx context.Context, month, year int) (int, error) {
	if month < 1 || month > 12 {
		return 0, invalid("month must be between 1 and 12")
	}
	fees, err := s.fees.List(ctx)
	if err != nil {
		return 0, err
	}
	byType := make(map[model.RoomType]model.FeeStructure)
	for _, f := range fees {
		if _, seen := byType[f.RoomType]; !seen && f.IsActive {
			byType[f.RoomType] = f
		}
	}

	p := s.payments
	created := 0
	err = s.write(ctx, func() error {
		existing, err := p.payments.List(ctx)
		if err != nil {
			return err
		}
		billed := make(map[int]bool)
		for _, pay := range existing {
			if pay.InPeriod(month, year) {
				billed[pay.StudentID] = true
			}
		}
		students, err := s.students.List(ctx)
		if err != nil {
			return err
		}
		now := s.now()
		for _, st := range students {
			if !st.IsActive || !st.HasRoom() || billed[st.ID] {
				continue
			}
			room, err := s.rooms.Get(ctx, *st.RoomID)
			if err != nil {
				continue
			}
			fee, ok := byType[room.RoomType]
			if !ok {
				continue
			}
			n, err := p.seq.Next(ctx)
			if err != nil {
				return fmt.Errorf("receipt number: %w", err)
			}
			if _, err := p.payments.Add(ctx, model.Payment{
				StudentID:     st.ID,
				StudentName:   st.FullName(),
				Amount:        fee.TotalMonthly(),
				Month:         month,
				Year:          year,
				PaymentDate:   now,
				Method:        model.MethodCash,
				ReceiptNumber: documentNumber("RCP", now, n),
				Status:        model.PaymentPending,
				Remarks:       "Monthly fee",
			}); err != nil {
				return err
			}
			created++
		}
		return nil
	}, p.payments)
	if err != nil {
		return 0, err
	}
	if created > 0 {
		metrics.PaymentsRecorded.WithLabelValues(string(model.PaymentPending)).Add(float64(created))
		s.record(ctx, "Fee", "Generate", fmt.Sprintf("%d monthly fee payments raised for %02d/%d", created, month, year))
	}
	return created, nil
}
