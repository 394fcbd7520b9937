package domain

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// X402Version1 is the only protocol version this server accepts.
const X402Version1 = 1

// PaymentRequirement describes what payment satisfies a gated request.
// It is issued by the server in a 402 response body, built fresh per
// request and never mutated after construction.
type PaymentRequirement struct {
	Scheme            string `json:"scheme"`
	Network           string `json:"network"`
	MaxAmountRequired string `json:"maxAmountRequired"` // decimal string, display units
	PayTo             string `json:"payTo"`
	Asset             string `json:"asset"`
	MaxTimeoutSeconds int    `json:"maxTimeoutSeconds"`
}

// PaymentPayload is the client-submitted claim that a requirement has been
// satisfied. It travels base64(JSON)-encoded in the X-Payment header.
type PaymentPayload struct {
	X402Version int          `json:"x402Version"`
	Scheme      string       `json:"scheme"`
	Network     string       `json:"network"`
	Payload     ProofDetails `json:"payload"`
}

// ProofDetails carries the scheme-specific settlement data. TxHash is the
// settlement reference the proof identity is derived from; a payload
// without one is rejected rather than identified by timestamp, since a
// timestamp identity is not collision-resistant and defeats replay
// protection.
type ProofDetails struct {
	TxHash       string `json:"txHash"`
	PayerAddress string `json:"payerAddress,omitempty"`
	Amount       string `json:"amount,omitempty"`
	Asset        string `json:"asset,omitempty"`
	Timestamp    int64  `json:"timestamp,omitempty"`
}

// ProofID derives the replay-detection identity of a payload. Two payloads
// with the same identity must never both be accepted.
func (p PaymentPayload) ProofID() string {
	return p.Network + "-" + p.Payload.TxHash
}

// HasSettlementRef reports whether the payload names a settlement
// transaction the identity can be derived from.
func (p PaymentPayload) HasSettlementRef() bool {
	return p.Payload.TxHash != ""
}

// EncodeHeader serialises the payload into its X-Payment transport form.
func (p PaymentPayload) EncodeHeader() (string, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("marshaling payment payload: %w", err)
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// PaymentReceipt is the confirmation attached to admitted responses in the
// X-Payment-Response header.
type PaymentReceipt struct {
	Verified  bool  `json:"verified"`
	Timestamp int64 `json:"timestamp"` // Unix milliseconds
}

// EncodeHeader serialises the receipt for the X-Payment-Response header.
func (r PaymentReceipt) EncodeHeader() (string, error) {
	raw, err := json.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("marshaling payment receipt: %w", err)
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}
