package core

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	TypeIncome  TransactionType = "INCOME"
	TypeExpense TransactionType = "EXPENSE"
)

const (
	StatusCompleted TransactionStatus = "COMPLETED"
	StatusPending   TransactionStatus = "PENDING"
	StatusPartial   TransactionStatus = "PARTIAL"
	StatusFailed    TransactionStatus = "FAILED"
)

const (
	CategorySales       Category = "sales"
	CategoryServices    Category = "services"
	CategoryInvestments Category = "investments"
	CategoryOperations  Category = "operations"
	CategoryPayroll     Category = "payroll"
	CategoryMarketing   Category = "marketing"
	CategoryTaxes       Category = "taxes"
	CategorySoftware    Category = "software"
	CategoryOffice      Category = "office"
	CategoryTravel      Category = "travel"
	CategoryOther       Category = "other"
)

type (
	TransactionType   string
	TransactionStatus string
	Category          string

	// Date is a plain calendar date. It deliberately carries no time-of-day
	// and no location: comparisons work on the year/month/day components so
	// a transaction entered near midnight never shifts a day.
	Date struct {
		Year  int
		Month int
		Day   int
	}

	// Transaction is a single bookkeeping entry. The commission and pending
	// fields are pointers: absent and zero are different things for the
	// proration and pending-commission rules.
	Transaction struct {
		ID          string
		Date        Date
		Description string
		Amount      decimal.Decimal
		Type        TransactionType
		Category    Category
		Status      TransactionStatus

		EmployeeName          string
		CommissionRate        *decimal.Decimal
		CommissionAmount      *decimal.Decimal
		CommissionPaymentDate *Date
		PendingAmount         *decimal.Decimal
	}

	// TaxSetting is one named percentage rate; the effective rate is the sum
	// over all settings (see EffectiveTaxRate).
	TaxSetting struct {
		ID         string
		Name       string
		Percentage decimal.Decimal
	}
)

var (
	ErrInvalidDate        = errors.New("invalid date")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrEmptyDescription   = errors.New("empty description")
	ErrDescriptionTooLong = errors.New("description too long (max 200 characters)")
	ErrInvalidType        = errors.New("invalid transaction type")
	ErrInvalidCategory    = errors.New("invalid category")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrInvalidCommission  = errors.New("invalid commission")
	ErrPendingWithoutPart = errors.New("pending amount requires PARTIAL status")
	ErrPartialNeedsAmount = errors.New("PARTIAL status requires a pending amount between zero and the transaction amount")
	ErrEmptyTaxName       = errors.New("empty tax name")
	ErrInvalidPercentage  = errors.New("invalid tax percentage")
)

func (t TransactionType) IsValid() bool {
	return t == TypeIncome || t == TypeExpense
}

func (s TransactionStatus) IsValid() bool {
	switch s {
	case StatusCompleted, StatusPending, StatusPartial, StatusFailed:
		return true
	}
	return false
}

// Categories returns the fixed category set in display order.
func Categories() []Category {
	return []Category{
		CategorySales, CategoryServices, CategoryInvestments,
		CategoryOperations, CategoryPayroll, CategoryMarketing,
		CategoryTaxes, CategorySoftware, CategoryOffice,
		CategoryTravel, CategoryOther,
	}
}

func (c Category) IsValid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

func NewDate(year, month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// Today returns the current calendar date in the local location.
func Today() Date {
	now := time.Now()
	return NewDate(now.Year(), int(now.Month()), now.Day())
}

// ParseDate parses a "YYYY-MM-DD" key into a Date. It splits the components
// directly instead of going through time.Parse so the result is never subject
// to a timezone day-shift.
func ParseDate(s string) (Date, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 3 {
		return Date{}, ErrInvalidDate
	}
	y, err := strconv.Atoi(parts[0])
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	d, err := strconv.Atoi(parts[2])
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	date := NewDate(y, m, d)
	if err := date.Validate(); err != nil {
		return Date{}, err
	}
	return date, nil
}

// Key returns the sortable "YYYY-MM-DD" storage key.
func (d Date) Key() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

func (d Date) String() string { return d.Key() }

func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

func (d Date) Validate() error {
	if d.Year < 1 || d.Month < 1 || d.Month > 12 || d.Day < 1 {
		return ErrInvalidDate
	}
	if d.Day > d.DaysInMonth() {
		return ErrInvalidDate
	}
	return nil
}

func (d Date) SameMonth(other Date) bool {
	return d.Year == other.Year && d.Month == other.Month
}

func (d Date) SameDay(other Date) bool {
	return d == other
}

// After compares the sortable keys. On "YYYY-MM-DD" keys lexicographic and
// chronological order coincide.
func (d Date) After(other Date) bool {
	return d.Key() > other.Key()
}

func (d Date) toTime() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.Local)
}

func fromTime(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

func (d Date) AddDays(n int) Date {
	return fromTime(d.toTime().AddDate(0, 0, n))
}

// AddMonths shifts d by n calendar months, clamping the day to the target
// month's length. March 31 minus one month is February 29, not March 2,
// which time.AddDate's overflow normalization would produce.
func (d Date) AddMonths(n int) Date {
	t := time.Date(d.Year, time.Month(d.Month+n), 1, 0, 0, 0, 0, time.UTC)
	out := NewDate(t.Year(), int(t.Month()), d.Day)
	if last := out.DaysInMonth(); out.Day > last {
		out.Day = last
	}
	return out
}

// DaysInMonth returns the calendar length of the month containing d.
func (d Date) DaysInMonth() int {
	return time.Date(d.Year, time.Month(d.Month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func (t Transaction) Validate() error {
	if err := t.Date.Validate(); err != nil {
		return err
	}
	desc := strings.TrimSpace(t.Description)
	if desc == "" {
		return ErrEmptyDescription
	}
	if len(t.Description) > 200 {
		return ErrDescriptionTooLong
	}
	if t.Amount.IsNegative() {
		return ErrInvalidAmount
	}
	if !t.Type.IsValid() {
		return ErrInvalidType
	}
	if !t.Category.IsValid() {
		return ErrInvalidCategory
	}
	if !t.Status.IsValid() {
		return ErrInvalidStatus
	}
	if t.CommissionRate != nil {
		if t.CommissionRate.IsNegative() || t.CommissionRate.GreaterThan(decimal.NewFromInt(100)) {
			return ErrInvalidCommission
		}
	}
	if t.CommissionAmount != nil && t.CommissionAmount.IsNegative() {
		return ErrInvalidCommission
	}
	if t.CommissionPaymentDate != nil {
		if err := t.CommissionPaymentDate.Validate(); err != nil {
			return err
		}
	}
	// PARTIAL status and pending amount imply each other; this is enforced
	// here, on the write path, not inside the aggregation engine.
	if t.Status == StatusPartial {
		if t.PendingAmount == nil || !t.PendingAmount.IsPositive() || t.PendingAmount.GreaterThan(t.Amount) {
			return ErrPartialNeedsAmount
		}
	} else if t.PendingAmount != nil && t.PendingAmount.IsPositive() {
		return ErrPendingWithoutPart
	}
	return nil
}

// ResolvedCommission returns the commission amount for the transaction:
// the stored value when present, otherwise amount x rate/100 when a rate is
// configured, otherwise nil.
func (t Transaction) ResolvedCommission() *decimal.Decimal {
	if t.CommissionAmount != nil {
		return t.CommissionAmount
	}
	if t.CommissionRate != nil {
		c := t.Amount.Mul(*t.CommissionRate).Div(decimal.NewFromInt(100))
		return &c
	}
	return nil
}

func (ts TaxSetting) Validate() error {
	if strings.TrimSpace(ts.Name) == "" {
		return ErrEmptyTaxName
	}
	if ts.Percentage.IsNegative() || ts.Percentage.GreaterThan(decimal.NewFromInt(100)) {
		return ErrInvalidPercentage
	}
	return nil
}
