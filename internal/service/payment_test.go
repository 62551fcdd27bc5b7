package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/iliyamo/hostel-management/internal/model"
	"github.com/iliyamo/hostel-management/internal/repository"
)

func (f *fixture) pay(t *testing.T, studentID int, amount int64, month, year int, status model.PaymentStatus) model.Payment {
	t.Helper()
	p, err := f.h.Payments.Record(f.ctx, model.Payment{StudentID: studentID, Amount: amount, Month: month, Year: year, Status: status})
	if err != nil {
		t.Fatalf("record payment: %v", err)
	}
	return p
}

func TestRecordPaymentStampsReceipt(t *testing.T) {
	f := newFixture(t)
	st := f.student(t, "Ahmed", "R-1")
	p := f.pay(t, st.ID, 8000, 3, 2026, "")
	if p.ReceiptNumber != "RCP-20260310-1001" {
		t.Fatalf("receipt = %q", p.ReceiptNumber)
	}
	if p.Status != model.PaymentPending || p.Method != model.MethodCash || p.StudentName != "Ahmed Test" {
		t.Fatalf("defaults = %+v", p)
	}
	if next := f.pay(t, st.ID, 500, 3, 2026, model.PaymentPaid); next.ReceiptNumber != "RCP-20260310-1002" {
		t.Fatalf("second receipt = %q", next.ReceiptNumber)
	}
}

func TestReceiptNumbersSurviveRestart(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	open := func() Stores {
		st := MemoryStores()
		var err error
		if st.Students, err = repository.OpenJSON[model.Student](ctx, dir, "students.json", true); err != nil {
			t.Fatal(err)
		}
		if st.Payments, err = repository.OpenJSON[model.Payment](ctx, dir, "payments.json", true); err != nil {
			t.Fatal(err)
		}
		return st
	}

	f := newFixtureWith(t, open())
	st := f.student(t, "Sara", "R-2")
	f.pay(t, st.ID, 8000, 3, 2026, model.PaymentPaid)
	f.pay(t, st.ID, 8000, 4, 2026, model.PaymentPending)

	restarted := newFixtureWith(t, open())
	p := restarted.pay(t, st.ID, 8000, 5, 2026, model.PaymentPending)
	if p.ReceiptNumber != "RCP-20260310-1003" {
		t.Fatalf("receipt after restart = %q", p.ReceiptNumber)
	}
}

func TestRevenueCountsPaidOnly(t *testing.T) {
	f := newFixture(t)
	st := f.student(t, "Hassan", "R-3")
	f.pay(t, st.ID, 8000, 3, 2026, model.PaymentPaid)
	f.pay(t, st.ID, 5000, 2, 2026, model.PaymentPaid)
	f.pay(t, st.ID, 9000, 3, 2026, model.PaymentPending)
	f.pay(t, st.ID, 1000, 3, 2026, model.PaymentWaived)

	if total, _ := f.h.Payments.TotalRevenue(f.ctx); total != 13000 {
		t.Fatalf("total = %d", total)
	}
	if march, _ := f.h.Payments.RevenueByMonth(f.ctx, 3, 2026); march != 8000 {
		t.Fatalf("march = %d", march)
	}
	if pending, _ := f.h.Payments.ListPending(f.ctx); len(pending) != 1 {
		t.Fatalf("pending = %d", len(pending))
	}
}

func TestDefaultersAndMarkOverdue(t *testing.T) {
	f := newFixture(t)
	st := f.student(t, "Fatima", "R-4")
	old := f.pay(t, st.ID, 3000, 1, 2026, model.PaymentPending)
	f.pay(t, st.ID, 9000, 3, 2026, model.PaymentPending)
	f.pay(t, st.ID, 4000, 3, 2026, model.PaymentLate)
	f.pay(t, st.ID, 8000, 2, 2026, model.PaymentPaid)

	def, err := f.h.Payments.Defaulters(f.ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(def) != 3 || def[0].Amount != 9000 || def[2].Amount != 3000 {
		t.Fatalf("defaulters = %+v", def)
	}

	n, err := f.h.Payments.MarkOverdue(f.ctx, testNow)
	if err != nil || n != 1 {
		t.Fatalf("marked %d, %v", n, err)
	}
	got, _ := f.h.Payments.Get(f.ctx, old.ID)
	if got.Status != model.PaymentOverdue {
		t.Fatalf("status = %s", got.Status)
	}
	if n, _ := f.h.Payments.MarkOverdue(f.ctx, testNow.Add(time.Hour)); n != 0 {
		t.Fatalf("second sweep marked %d", n)
	}
}

func TestGenerateReceipt(t *testing.T) {
	f := newFixture(t)
	st := f.student(t, "Bilal", "R-5")
	p := f.pay(t, st.ID, 12500, 3, 2026, model.PaymentPaid)
	out, err := f.h.Payments.GenerateReceipt(f.ctx, p.ID)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"PAYMENT RECEIPT", p.ReceiptNumber, "Rs. 12,500", "03/2026", "Bilal Test"} {
		if !strings.Contains(out, want) {
			t.Errorf("receipt missing %q:\n%s", want, out)
		}
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	for _, l := range lines {
		if n := len([]rune(l)); n != 44 {
			t.Fatalf("line width %d: %q", n, l)
		}
	}
}

func TestFormatAmount(t *testing.T) {
	cases := map[int64]string{0: "0", 999: "999", 1000: "1,000", 1234567: "1,234,567", -45000: "-45,000"}
	for in, want := range cases {
		if got := FormatAmount(in); got != want {
			t.Errorf("FormatAmount(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestGenerateMonthlyFees(t *testing.T) {
	f := newFixture(t)
	room := f.room(t, "A-101", 2)
	if _, err := f.h.Fees.Create(f.ctx, model.FeeStructure{RoomType: model.RoomDouble, MonthlyRent: 8000, MessFee: 8000, UtilityCharges: 1500, LaundryFee: 1000}); err != nil {
		t.Fatal(err)
	}
	billed := f.student(t, "Ali", "R-1")
	fresh := f.student(t, "Sara", "R-2")
	f.student(t, "Homeless", "R-3")
	for _, id := range []int{billed.ID, fresh.ID} {
		if err := f.h.Students.AssignRoom(f.ctx, id, room.ID); err != nil {
			t.Fatal(err)
		}
	}
	f.pay(t, billed.ID, 18500, 4, 2026, model.PaymentPaid)

	n, err := f.h.Fees.GenerateMonthlyFees(f.ctx, 4, 2026)
	if err != nil || n != 1 {
		t.Fatalf("generated %d, %v", n, err)
	}
	mine, _ := f.h.Payments.ListForStudent(f.ctx, fresh.ID)
	if len(mine) != 1 || mine[0].Amount != 18500 || mine[0].Status != model.PaymentPending {
		t.Fatalf("generated payment = %+v", mine)
	}
	if n, _ := f.h.Fees.GenerateMonthlyFees(f.ctx, 4, 2026); n != 0 {
		t.Fatalf("regenerated %d", n)
	}
}

func TestRevenueAccumulatesWithinPeriod(t *testing.T) {
	f := newFixture(t)
	st := f.student(t, "Bilal", "R-7")

	steps := []struct {
		amount int64
		want   int64
	}{
		{8000, 8000},
		{5000, 13000},
		{2500, 15500},
	}
	for _, s := range steps {
		f.pay(t, st.ID, s.amount, 3, 2026, model.PaymentPaid)
		if got, _ := f.h.Payments.RevenueByMonth(f.ctx, 3, 2026); got != s.want {
			t.Fatalf("after %d: revenue 3/2026 = %d, want %d", s.amount, got, s.want)
		}
	}
	if other, _ := f.h.Payments.RevenueByMonth(f.ctx, 4, 2026); other != 0 {
		t.Fatalf("revenue 4/2026 = %d", other)
	}
}

func TestStatusChangeMovesRevenue(t *testing.T) {
	f := newFixture(t)
	st := f.student(t, "Zara", "R-8")
	keep := f.pay(t, st.ID, 5000, 3, 2026, model.PaymentPaid)
	p := f.pay(t, st.ID, 8000, 3, 2026, model.PaymentPaid)

	tests := []struct {
		status model.PaymentStatus
		want   int64
	}{
		{model.PaymentPending, 5000},
		{model.PaymentPaid, 13000},
		{model.PaymentWaived, 5000},
		{model.PaymentOverdue, 5000},
		{model.PaymentPaid, 13000},
	}
	for _, tt := range tests {
		got, err := f.h.Payments.UpdateStatus(f.ctx, p.ID, tt.status)
		if err != nil {
			t.Fatalf("update to %s: %v", tt.status, err)
		}
		if got.Status != tt.status || got.Amount != p.Amount {
			t.Fatalf("updated payment = %+v", got)
		}
		total, _ := f.h.Payments.TotalRevenue(f.ctx)
		month, _ := f.h.Payments.RevenueByMonth(f.ctx, 3, 2026)
		if total != tt.want || month != tt.want {
			t.Fatalf("%s: total=%d month=%d, want %d", tt.status, total, month, tt.want)
		}
	}
	if got, _ := f.h.Payments.Get(f.ctx, keep.ID); got.Status != model.PaymentPaid {
		t.Fatalf("untouched payment status = %s", got.Status)
	}
	if _, err := f.h.Payments.UpdateStatus(f.ctx, 999, model.PaymentPaid); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing payment err = %v", err)
	}
	if _, err := f.h.Payments.UpdateStatus(f.ctx, p.ID, "Refunded"); !errors.Is(err, ErrValidation) {
		t.Fatalf("unknown status err = %v", err)
	}
}
