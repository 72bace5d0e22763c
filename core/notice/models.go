package notice

import (
	"time"

	"github.com/sciencewithkalana/portal/core"
)

// Notice types.
const (
	TypeGeneral = "general"
	TypeUrgent  = "urgent"
	TypePayment = "payment"
)

// Notice is a time-boxed announcement. Expiry is evaluated at read time;
// expired notices stay in storage.
type Notice struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Message   string     `json:"message"`
	Type      string     `json:"type"`
	CreatedAt time.Time  `json:"createdAt"` // UTC
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

// NewNotice contains information needed to publish a Notice.
type NewNotice struct {
	Title     string     `json:"title" validate:"required"`
	Message   string     `json:"message" validate:"required"`
	Type      string     `json:"type" validate:"required,oneof=general urgent payment"`
	ExpiresAt *time.Time `json:"expiresAt"`
}

func (nn *NewNotice) Clean() {
	nn.Title = core.CleanString(nn.Title)
	nn.Message = core.CleanString(nn.Message)
}
