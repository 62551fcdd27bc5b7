package model

// FeeStructure is the monthly fee schedule of a room type.
type FeeStructure struct {
	ID              int      `json:"id"`
	RoomType        RoomType `json:"room_type" validate:"enum"`
	MonthlyRent     int64    `json:"monthly_rent" validate:"gte=0"`
	MessFee         int64    `json:"mess_fee" validate:"gte=0"`
	UtilityCharges  int64    `json:"utility_charges" validate:"gte=0"`
	SecurityDeposit int64    `json:"security_deposit" validate:"gte=0"`
	LaundryFee      int64    `json:"laundry_fee" validate:"gte=0"`
	Description     string   `json:"description,omitempty"`
	IsActive        bool     `json:"is_active"`
}

func (f FeeStructure) RecordID() int { return f.ID }

func (f FeeStructure) WithRecordID(id int) FeeStructure { f.ID = id; return f }

// TotalMonthly is the recurring monthly charge. The security deposit is a
// one-off charge and is not part of it.
func (f FeeStructure) TotalMonthly() int64 {
	return f.MonthlyRent + f.MessFee + f.UtilityCharges + f.LaundryFee
}
