package models

// Income is one row of the append-only salary ledger. The most recently
// created row is the current one.
type Income struct {
	Base
	Owned
	Month           string  `gorm:"not null" json:"month"`
	Year            int     `gorm:"not null" json:"year"`
	BaseSalary      float64 `gorm:"not null;default:0" json:"base_salary"`
	Overtime        float64 `gorm:"not null;default:0" json:"overtime"`
	Bonus           float64 `gorm:"not null;default:0" json:"bonus"`
	Freelance       float64 `gorm:"not null;default:0" json:"freelance"`
	PassiveIncome   float64 `gorm:"not null;default:0" json:"passive_income"`
	DeductionsPF    float64 `gorm:"column:deductions_pf;not null;default:0" json:"deductions_pf"`
	DeductionsTax   float64 `gorm:"not null;default:0" json:"deductions_tax"`
	DeductionsOther float64 `gorm:"not null;default:0" json:"deductions_other"`
	Notes           string  `json:"notes,omitempty"`
}

// Earnings sums every earning component.
func (i *Income) Earnings() float64 {
	return i.BaseSalary + i.Overtime + i.Bonus + i.Freelance + i.PassiveIncome
}

// Deductions sums every deduction component.
func (i *Income) Deductions() float64 {
	return i.DeductionsPF + i.DeductionsTax + i.DeductionsOther
}

// Net is earnings minus deductions.
func (i *Income) Net() float64 {
	return i.Earnings() - i.Deductions()
}

func (Income) TableName() string { return "income" }
func (*Income) Kind() RecordKind { return KindIncome }

// EMIStatus is the lifecycle of a recurring obligation.
type EMIStatus string

const (
	EMIStatusActive EMIStatus = "active"
	EMIStatusClosed EMIStatus = "closed"
)

// EMI is a recurring loan obligation. Only active rows count toward the monthly load.
type EMI struct {
	Base
	Owned
	Name            string    `gorm:"not null" json:"name"`
	Lender          string    `json:"lender,omitempty"`
	LoanType        string    `json:"loan_type,omitempty"`
	PrincipalAmount float64   `json:"principal_amount,omitempty"`
	InterestRate    float64   `json:"interest_rate,omitempty"`
	EMIAmount       float64   `gorm:"column:emi_amount;not null" json:"emi_amount"`
	DueDay          int       `gorm:"not null;default:1" json:"due_day"`
	TotalMonths     int       `json:"total_months"`
	RemainingMonths int       `json:"remaining_months"`
	StartDate       string    `gorm:"size:10" json:"start_date,omitempty"`
	EndDate         string    `gorm:"size:10" json:"end_date,omitempty"`
	AutoDebit       bool      `json:"auto_debit"`
	Status          EMIStatus `gorm:"not null;default:'active';index" json:"status"`
}

func (EMI) TableName() string { return "emis" }
func (*EMI) Kind() RecordKind { return KindEMI }

// BillingCycle represents how often a subscription renews
type BillingCycle string

const (
	BillingCycleMonthly BillingCycle = "monthly"
	BillingCycleYearly  BillingCycle = "yearly"
)

// SubscriptionStatus is the lifecycle of a subscription.
type SubscriptionStatus string

const (
	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"
)

// Subscription is a recurring service charge.
type Subscription struct {
	Base
	Owned
	Name         string             `gorm:"not null" json:"name"`
	Amount       float64            `gorm:"not null" json:"amount"`
	BillingCycle BillingCycle       `gorm:"not null;default:'monthly'" json:"billing_cycle"`
	Category     string             `gorm:"not null;default:'other'" json:"category"`
	RenewalDate  string             `gorm:"size:10" json:"renewal_date,omitempty"`
	AutoRenew    bool               `json:"auto_renew"`
	IsEssential  bool               `json:"is_essential"`
	Status       SubscriptionStatus `gorm:"not null;default:'active';index" json:"status"`
}

func (Subscription) TableName() string { return "subscriptions" }
func (*Subscription) Kind() RecordKind { return KindSubscription }

// Expense is a single immutable spend entry. Date is an ISO calendar date.
type Expense struct {
	Base
	Owned
	Amount        float64 `gorm:"not null" json:"amount"`
	Category      string  `gorm:"not null;default:'other'" json:"category"`
	SubCategory   string  `json:"sub_category,omitempty"`
	Description   string  `json:"description,omitempty"`
	PaymentMethod string  `json:"payment_method,omitempty"`
	Date          string  `gorm:"size:10;not null;index" json:"date"`
	IsRecurring   bool    `json:"is_recurring"`
}

func (Expense) TableName() string { return "expenses" }
func (*Expense) Kind() RecordKind { return KindExpense }
