package domain

import (
	"time"

	"github.com/google/uuid"
)

// Purchase records one admitted paid access to a strategy. Written after
// the gate admits a verified proof; the settlement tx hash ties the row
// back to the consumed proof identity.
type Purchase struct {
	ID           uuid.UUID `json:"id"`
	StrategyID   string    `json:"strategy_id"`
	PayerAddress string    `json:"payer_address,omitempty"`
	TxHash       string    `json:"tx_hash"`
	Network      string    `json:"network"`
	Amount       string    `json:"amount"` // USDC, decimal string
	CreatedAt    time.Time `json:"created_at"`
}
