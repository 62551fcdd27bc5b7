package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/iliyamo/hostel-management/internal/metrics"
	"github.com/iliyamo/hostel-management/internal/model"
	"github.com/iliyamo/hostel-management/internal/repository"
)

// Document number floors. The first receipt is RCP-<date>-1001 and the
// first visitor pass VP-<date>-5001.
const (
	ReceiptFloor = 1000
	PassFloor    = 5000
)

type PaymentService struct {
	base
	payments repository.Store[model.Payment]
	students repository.Store[model.Student]
	seq      repository.Sequence
}

func newPaymentService(b base, payments repository.Store[model.Payment], students repository.Store[model.Student], seq repository.Sequence) *PaymentService {
	if seq == nil {
		seq = repository.NewCounter(ReceiptFloorFrom(context.Background(), payments))
	}
	return &PaymentService{base: b, payments: payments, students: students, seq: seq}
}

// ReceiptFloorFrom returns the highest receipt ordinal already stored, or
// ReceiptFloor when there is none.
func ReceiptFloorFrom(ctx context.Context, payments repository.Store[model.Payment]) int64 {
	all, _ := payments.List(ctx)
	floor := int64(ReceiptFloor)
	for _, p := range all {
		if n, ok := documentOrdinal(p.ReceiptNumber); ok && n > floor {
			floor = n
		}
	}
	return floor
}

// Record stores a payment, stamping the payment date and a new receipt
// number. Status defaults to Pending and method to Cash.
func (s *PaymentService) Record(ctx context.Context, p model.Payment) (model.Payment, error) {
	p.ID = 0
	if p.Status == "" {
		p.Status = model.PaymentPending
	}
	if p.Method == "" {
		p.Method = model.MethodCash
	}
	if err := check(p); err != nil {
		return model.Payment{}, err
	}
	st, err := s.students.Get(ctx, p.StudentID)
	if err != nil {
		return model.Payment{}, notFound(err, ErrStudentNotFound, p.StudentID)
	}
	p.StudentName = st.FullName()

	err = s.write(ctx, func() error {
		n, err := s.seq.Next(ctx)
		if err != nil {
			return fmt.Errorf("receipt number: %w", err)
		}
		now := s.now()
		p.PaymentDate = now
		p.ReceiptNumber = documentNumber("RCP", now, n)
		p, err = s.payments.Add(ctx, p)
		return err
	}, s.payments)
	if err != nil {
		return model.Payment{}, err
	}
	metrics.PaymentsRecorded.WithLabelValues(string(p.Status)).Inc()
	s.record(ctx, "Payment", "Record", fmt.Sprintf("%s: Rs. %d from %s for %02d/%d (%s)", p.ReceiptNumber, p.Amount, p.StudentName, p.Month, p.Year, p.Status))
	return p, nil
}

func (s *PaymentService) Get(ctx context.Context, id int) (model.Payment, error) {
	p, err := s.payments.Get(ctx, id)
	if err != nil {
		return model.Payment{}, notFound(err, ErrPaymentNotFound, id)
	}
	return p, nil
}

// UpdateStatus changes the settlement status of a payment.
func (s *PaymentService) UpdateStatus(ctx context.Context, id int, status model.PaymentStatus) (model.Payment, error) {
	if !status.Valid() {
		return model.Payment{}, invalid("unknown payment status %q", status)
	}
	var p model.Payment
	err := s.write(ctx, func() error {
		var err error
		if p, err = s.Get(ctx, id); err != nil {
			return err
		}
		p.Status = status
		return s.payments.Update(ctx, p)
	}, s.payments)
	if err != nil {
		return model.Payment{}, err
	}
	s.record(ctx, "Payment", "Status", fmt.Sprintf("%s set to %s", p.ReceiptNumber, status))
	return p, nil
}

func (s *PaymentService) List(ctx context.Context) ([]model.Payment, error) {
	return s.payments.List(ctx)
}

func (s *PaymentService) ListForStudent(ctx context.Context, studentID int) ([]model.Payment, error) {
	return filter(ctx, s.payments, func(p model.Payment) bool { return p.StudentID == studentID })
}

func (s *PaymentService) ListByMonth(ctx context.Context, month, year int) ([]model.Payment, error) {
	return filter(ctx, s.payments, func(p model.Payment) bool { return p.InPeriod(month, year) })
}

// ListPending returns payments that are Pending or Overdue.
func (s *PaymentService) ListPending(ctx context.Context) ([]model.Payment, error) {
	return filter(ctx, s.payments, model.Payment.Outstanding)
}

// TotalRevenue sums the amounts of Paid payments.
func (s *PaymentService) TotalRevenue(ctx context.Context) (int64, error) {
	return s.sumPaid(ctx, func(model.Payment) bool { return true })
}

// RevenueByMonth sums the Paid payments of one billing period.
func (s *PaymentService) RevenueByMonth(ctx context.Context, month, year int) (int64, error) {
	return s.sumPaid(ctx, func(p model.Payment) bool { return p.InPeriod(month, year) })
}

// Defaulters lists outstanding payments plus any unpaid payment of the
// current period, largest amount first.
func (s *PaymentService) Defaulters(ctx context.Context) ([]model.Payment, error) {
	now := s.now()
	month, year := int(now.Month()), now.Year()
	out, err := filter(ctx, s.payments, func(p model.Payment) bool {
		return p.Outstanding() || (p.InPeriod(month, year) && p.Status != model.PaymentPaid)
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Amount > out[j].Amount })
	return out, nil
}

// MarkOverdue moves Pending payments of billing periods before now's
// month to Overdue and returns how many changed.
func (s *PaymentService) MarkOverdue(ctx context.Context, now time.Time) (int, error) {
	current := now.Year()*12 + int(now.Month())
	var changed []string
	err := s.write(ctx, func() error {
		all, err := s.payments.List(ctx)
		if err != nil {
			return err
		}
		for _, p := range all {
			if p.Status != model.PaymentPending || p.Year*12+p.Month >= current {
				continue
			}
			p.Status = model.PaymentOverdue
			if err := s.payments.Update(ctx, p); err != nil {
				return err
			}
			changed = append(changed, p.ReceiptNumber)
		}
		return nil
	}, s.payments)
	if err != nil {
		return 0, err
	}
	if len(changed) > 0 {
		metrics.OverdueMarked.Add(float64(len(changed)))
		s.record(ctx, "Payment", "Mark Overdue", strings.Join(changed, ", "))
	}
	return len(changed), nil
}

// GenerateReceipt renders the printable receipt of a payment.
func (s *PaymentService) GenerateReceipt(ctx context.Context, id int) (string, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	const width = 42
	line := func(label, value string) string {
		return "║ " + padRight(fmt.Sprintf("%-11s: %s", label, value), width-1) + "║\n"
	}
	var b strings.Builder
	b.WriteString("╔" + strings.Repeat("═", width) + "╗\n")
	b.WriteString("║" + center("HOSTEL MANAGEMENT SYSTEM", width) + "║\n")
	b.WriteString("║" + center("PAYMENT RECEIPT", width) + "║\n")
	b.WriteString("╠" + strings.Repeat("═", width) + "╣\n")
	b.WriteString(line("Receipt #", p.ReceiptNumber))
	b.WriteString(line("Date", p.PaymentDate.Format("02-Jan-2006 15:04")))
	b.WriteString(line("Student ID", strconv.Itoa(p.StudentID)))
	b.WriteString(line("Student", p.StudentName))
	b.WriteString(line("Amount", "Rs. "+FormatAmount(p.Amount)))
	b.WriteString(line("Period", fmt.Sprintf("%02d/%d", p.Month, p.Year)))
	b.WriteString(line("Method", string(p.Method)))
	b.WriteString(line("Status", string(p.Status)))
	b.WriteString("╠" + strings.Repeat("═", width) + "╣\n")
	b.WriteString("║" + center("Thank you for payment!", width) + "║\n")
	b.WriteString("╚" + strings.Repeat("═", width) + "╝\n")
	return b.String(), nil
}

func (s *PaymentService) sumPaid(ctx context.Context, keep func(model.Payment) bool) (int64, error) {
	all, err := s.payments.List(ctx)
	if err != nil {
		return 0, err
	}
	var total int64
	for _, p := range all {
		if p.Status == model.PaymentPaid && keep(p) {
			total += p.Amount
		}
	}
	return total, nil
}

// FormatAmount renders an amount with thousands separators.
func FormatAmount(n int64) string {
	sign := ""
	if n < 0 {
		sign, n = "-", -n
	}
	s := strconv.FormatInt(n, 10)
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	return sign + s
}

// documentNumber formats PREFIX-yyyyMMdd-n.
func documentNumber(prefix string, at time.Time, n int64) string {
	return fmt.Sprintf("%s-%s-%d", prefix, at.Format("20060102"), n)
}

// documentOrdinal extracts n from PREFIX-yyyyMMdd-n.
func documentOrdinal(doc string) (int64, bool) {
	i := strings.LastIndexByte(doc, '-')
	if i < 0 {
		return 0, false
	}
	n, err := strconv.ParseInt(doc[i+1:], 10, 64)
	return n, err == nil
}

func padRight(s string, width int) string {
	if n := width - len([]rune(s)); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}

func center(s string, width int) string {
	n := width - len([]rune(s))
	if n <= 0 {
		return s
	}
	left := n / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", n-left)
}
