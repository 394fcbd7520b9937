package domain

import "time"

// Wallet is a provisioned demo wallet for a user. Provisioning is
// idempotent per user: a repeat request returns the existing record.
type Wallet struct {
	UserID    string    `json:"user_id"`
	Address   string    `json:"address"`
	WalletID  string    `json:"wallet_id"`
	Network   string    `json:"network"`
	IsDemo    bool      `json:"is_demo_wallet"`
	CreatedAt time.Time `json:"created_at"`
}
