package model

// Enumerations are stored as their string names so the JSON files stay
// readable and survive reordering of the constants.

type RoomType string

const (
	RoomSingle    RoomType = "Single"
	RoomDouble    RoomType = "Double"
	RoomTriple    RoomType = "Triple"
	RoomQuad      RoomType = "Quad"
	RoomDormitory RoomType = "Dormitory"
)

// RoomTypes lists the room types in display order.
var RoomTypes = []RoomType{RoomSingle, RoomDouble, RoomTriple, RoomQuad, RoomDormitory}

func (t RoomType) Valid() bool { return oneOf(t, RoomTypes) }

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "Pending"
	PaymentPaid    PaymentStatus = "Paid"
	PaymentLate    PaymentStatus = "Late"
	PaymentOverdue PaymentStatus = "Overdue"
	PaymentWaived  PaymentStatus = "Waived"
)

var PaymentStatuses = []PaymentStatus{PaymentPending, PaymentPaid, PaymentLate, PaymentOverdue, PaymentWaived}

func (s PaymentStatus) Valid() bool { return oneOf(s, PaymentStatuses) }

type PaymentMethod string

const (
	MethodCash          PaymentMethod = "Cash"
	MethodBankTransfer  PaymentMethod = "BankTransfer"
	MethodOnlineBanking PaymentMethod = "OnlineBanking"
	MethodCheque        PaymentMethod = "Cheque"
	MethodJazzCash      PaymentMethod = "JazzCash"
	MethodEasyPaisa     PaymentMethod = "EasyPaisa"
)

var PaymentMethods = []PaymentMethod{MethodCash, MethodBankTransfer, MethodOnlineBanking, MethodCheque, MethodJazzCash, MethodEasyPaisa}

func (m PaymentMethod) Valid() bool { return oneOf(m, PaymentMethods) }

type ComplaintStatus string

const (
	ComplaintOpen       ComplaintStatus = "Open"
	ComplaintInProgress ComplaintStatus = "InProgress"
	ComplaintResolved   ComplaintStatus = "Resolved"
	ComplaintClosed     ComplaintStatus = "Closed"
)

var ComplaintStatuses = []ComplaintStatus{ComplaintOpen, ComplaintInProgress, ComplaintResolved, ComplaintClosed}

func (s ComplaintStatus) Valid() bool { return oneOf(s, ComplaintStatuses) }

// Finished reports whether the complaint carries a resolution timestamp.
func (s ComplaintStatus) Finished() bool {
	return s == ComplaintResolved || s == ComplaintClosed
}

type ComplaintCategory string

const (
	CategoryMaintenance ComplaintCategory = "Maintenance"
	CategoryElectrical  ComplaintCategory = "Electrical"
	CategoryPlumbing    ComplaintCategory = "Plumbing"
	CategoryCleanliness ComplaintCategory = "Cleanliness"
	CategoryFood        ComplaintCategory = "Food"
	CategorySecurity    ComplaintCategory = "Security"
	CategoryRoomIssue   ComplaintCategory = "RoomIssue"
	CategoryOther       ComplaintCategory = "Other"
)

var ComplaintCategories = []ComplaintCategory{
	CategoryMaintenance, CategoryElectrical, CategoryPlumbing, CategoryCleanliness,
	CategoryFood, CategorySecurity, CategoryRoomIssue, CategoryOther,
}

func (c ComplaintCategory) Valid() bool { return oneOf(c, ComplaintCategories) }

type ComplaintPriority string

const (
	PriorityLow      ComplaintPriority = "Low"
	PriorityMedium   ComplaintPriority = "Medium"
	PriorityHigh     ComplaintPriority = "High"
	PriorityCritical ComplaintPriority = "Critical"
)

var ComplaintPriorities = []ComplaintPriority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}

func (p ComplaintPriority) Valid() bool { return oneOf(p, ComplaintPriorities) }

type StaffRole string

const (
	RoleWarden      StaffRole = "Warden"
	RoleAccountant  StaffRole = "Accountant"
	RoleMaintenance StaffRole = "Maintenance"
	RoleCook        StaffRole = "Cook"
	RoleGuard       StaffRole = "Guard"
	RoleCleaner     StaffRole = "Cleaner"
	RoleManager     StaffRole = "Manager"
	RoleElectrician StaffRole = "Electrician"
)

var StaffRoles = []StaffRole{RoleWarden, RoleAccountant, RoleMaintenance, RoleCook, RoleGuard, RoleCleaner, RoleManager, RoleElectrician}

func (r StaffRole) Valid() bool { return oneOf(r, StaffRoles) }

type MealType string

const (
	MealBreakfast MealType = "Breakfast"
	MealLunch     MealType = "Lunch"
	MealDinner    MealType = "Dinner"
)

var MealTypes = []MealType{MealBreakfast, MealLunch, MealDinner}

func (m MealType) Valid() bool { return oneOf(m, MealTypes) }

// Rank orders meals through the day.
func (m MealType) Rank() int { return indexOf(m, MealTypes) }

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "Present"
	AttendanceAbsent  AttendanceStatus = "Absent"
	AttendanceLeave   AttendanceStatus = "Leave"
	AttendanceLate    AttendanceStatus = "Late"
)

var AttendanceStatuses = []AttendanceStatus{AttendancePresent, AttendanceAbsent, AttendanceLeave, AttendanceLate}

func (s AttendanceStatus) Valid() bool { return oneOf(s, AttendanceStatuses) }

type NoticePriority string

const (
	NoticeLow    NoticePriority = "Low"
	NoticeMedium NoticePriority = "Medium"
	NoticeHigh   NoticePriority = "High"
	NoticeUrgent NoticePriority = "Urgent"
)

var NoticePriorities = []NoticePriority{NoticeLow, NoticeMedium, NoticeHigh, NoticeUrgent}

func (p NoticePriority) Valid() bool { return oneOf(p, NoticePriorities) }

// Rank is higher for more important notices.
func (p NoticePriority) Rank() int { return indexOf(p, NoticePriorities) }

type VisitorStatus string

const (
	VisitorCheckedIn  VisitorStatus = "CheckedIn"
	VisitorCheckedOut VisitorStatus = "CheckedOut"
)

func (s VisitorStatus) Valid() bool { return s == VisitorCheckedIn || s == VisitorCheckedOut }

func oneOf[T comparable](v T, set []T) bool { return indexOf(v, set) >= 0 }

func indexOf[T comparable](v T, set []T) int {
	for i, s := range set {
		if s == v {
			return i
		}
	}
	return -1
}
