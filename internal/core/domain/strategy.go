package domain

import "fmt"

// RiskLevel classifies how aggressive a strategy is.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Strategy is a catalog entry: display metadata plus the paid allocation
// breakdown. The allocation is the protected payload and is withheld from
// every preview view.
type Strategy struct {
	ID                   string            `json:"id"`
	Name                 string            `json:"name"`
	Description          string            `json:"description"`
	Category             string            `json:"category"`
	RiskLevel            RiskLevel         `json:"riskLevel"`
	Price                string            `json:"price"` // USDC, decimal string
	Allocation           []TokenAllocation `json:"allocation"`
	RebalancingFrequency string            `json:"rebalancingFrequency,omitempty"`
	ExpectedAPY          string            `json:"expectedAPY"`
	MinInvestment        string            `json:"minInvestment"`
}

// TokenAllocation is one slice of a strategy's portfolio.
type TokenAllocation struct {
	Symbol     string  `json:"symbol"`
	Percentage float64 `json:"percentage"`
	Address    string  `json:"address,omitempty"`
	Protocol   string  `json:"protocol,omitempty"`
}

// StrategyPreview is the public view of a strategy. No allocation details,
// only a count of how many tokens the paid breakdown holds.
type StrategyPreview struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Description       string    `json:"description"`
	Category          string    `json:"category"`
	RiskLevel         RiskLevel `json:"riskLevel"`
	Price             string    `json:"price"`
	ExpectedAPY       string    `json:"expectedAPY"`
	MinInvestment     string    `json:"minInvestment"`
	AllocationSummary string    `json:"allocationSummary"`
}

// Preview returns the public view of the strategy.
func (s Strategy) Preview() StrategyPreview {
	plural := ""
	if len(s.Allocation) != 1 {
		plural = "s"
	}
	return StrategyPreview{
		ID:                s.ID,
		Name:              s.Name,
		Description:       s.Description,
		Category:          s.Category,
		RiskLevel:         s.RiskLevel,
		Price:             s.Price,
		ExpectedAPY:       s.ExpectedAPY,
		MinInvestment:     s.MinInvestment,
		AllocationSummary: fmt.Sprintf("%d token%s", len(s.Allocation), plural),
	}
}
