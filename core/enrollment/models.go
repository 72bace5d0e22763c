package enrollment

import "time"

// Payment methods.
const (
	MethodPayHere      = "payhere"
	MethodBankTransfer = "bank_transfer"
)

// Payment states.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Payment links a Student and a Class. A completed Payment is the sole
// trigger for enrollment; PaidAt is stamped only on transition to completed.
type Payment struct {
	ID            string     `json:"id"`
	StudentID     string     `json:"studentId"`
	ClassID       string     `json:"classId"`
	Amount        float64    `json:"amount"`
	Method        string     `json:"method"`
	Status        string     `json:"status"`
	BankSlipURL   string     `json:"bankSlipUrl,omitempty"`
	TransactionID string     `json:"transactionId,omitempty"`
	PaidAt        *time.Time `json:"paidAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"` // UTC
}

// accessRef is the reference time the expiry window counts from.
func (p Payment) accessRef() time.Time {
	if p.PaidAt != nil {
		return *p.PaidAt
	}
	return p.CreatedAt
}

// NewPayment contains information needed to submit a payment for a class.
// The amount is taken from the class's current price.
type NewPayment struct {
	StudentID   string `json:"studentId" validate:"required"`
	ClassID     string `json:"classId" validate:"required"`
	Method      string `json:"method" validate:"required,oneof=payhere bank_transfer"`
	BankSlipURL string `json:"bankSlipUrl"`
}

// Override is a manual activation of one student/class pair by an admin. It
// grants access regardless of elapsed time and fabricates no Payment.
type Override struct {
	StudentID   string    `json:"studentId"`
	ClassID     string    `json:"classId"`
	ActivatedAt time.Time `json:"activatedAt"` // UTC
}

// Stats are the admin console aggregates, recomputed on demand.
type Stats struct {
	TotalStudents   int     `json:"totalStudents"`
	ActiveClasses   int     `json:"activeClasses"`
	TotalRevenue    float64 `json:"totalRevenue"`
	PendingPayments int     `json:"pendingPayments"`
}
