package model

import "time"

// Payment is a fee payment for one billing period (Month, Year). Amounts
// are whole currency units.
type Payment struct {
	ID            int           `json:"id"`
	StudentID     int           `json:"student_id" validate:"gt=0"`
	StudentName   string        `json:"student_name"`
	Amount        int64         `json:"amount" validate:"gt=0"`
	Month         int           `json:"month" validate:"min=1,max=12"`
	Year          int           `json:"year" validate:"min=2000,max=2100"`
	PaymentDate   time.Time     `json:"payment_date"`
	Method        PaymentMethod `json:"method" validate:"enum"`
	ReceiptNumber string        `json:"receipt_number"`
	Status        PaymentStatus `json:"status" validate:"enum"`
	Remarks       string        `json:"remarks,omitempty"`
}

func (p Payment) RecordID() int { return p.ID }

func (p Payment) WithRecordID(id int) Payment { p.ID = id; return p }

// InPeriod reports whether the payment belongs to the given billing period.
func (p Payment) InPeriod(month, year int) bool { return p.Month == month && p.Year == year }

// Outstanding reports whether the payment still awaits settlement.
func (p Payment) Outstanding() bool {
	return p.Status == PaymentPending || p.Status == PaymentOverdue
}
