package memory

import "strategy-vault/internal/core/domain"

// Catalog implements ports.StrategyCatalog over a fixed slice. The catalog
// is immutable after construction, so reads need no locking.
type Catalog struct {
	strategies []domain.Strategy
	byID       map[string]int
}

// NewCatalog creates a catalog from the given strategies, preserving order.
func NewCatalog(strategies []domain.Strategy) *Catalog {
	byID := make(map[string]int, len(strategies))
	for i, s := range strategies {
		byID[s.ID] = i
	}
	return &Catalog{strategies: strategies, byID: byID}
}

// NewDefaultCatalog creates the built-in demo catalog.
func NewDefaultCatalog() *Catalog {
	return NewCatalog(defaultStrategies())
}

// List returns all strategies in catalog order.
func (c *Catalog) List() []domain.Strategy {
	out := make([]domain.Strategy, len(c.strategies))
	copy(out, c.strategies)
	return out
}

// GetByID returns the strategy or nil when the id is unknown.
func (c *Catalog) GetByID(id string) *domain.Strategy {
	i, ok := c.byID[id]
	if !ok {
		return nil
	}
	s := c.strategies[i]
	return &s
}

func defaultStrategies() []domain.Strategy {
	return []domain.Strategy{
		{
			ID:          "passive-yield",
			Name:        "Passive Yield",
			Description: "Deploy USDC to over-collateralized lending markets on Base for steady, low-risk returns",
			Category:    "DeFi Lending",
			RiskLevel:   domain.RiskLow,
			Price:       "0.01",
			Allocation: []domain.TokenAllocation{
				{Symbol: "USDC", Percentage: 100, Protocol: "Aave v3", Address: "0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913"},
			},
			ExpectedAPY:   "4-8%",
			MinInvestment: "$1 USDC",
		},
		{
			ID:          "investooor",
			Name:        "Investooor",
			Description: "Deploy USDC into COIN50 index - a diversified portfolio of the top 50 crypto assets",
			Category:    "Index Fund",
			RiskLevel:   domain.RiskMedium,
			Price:       "0.01",
			Allocation: []domain.TokenAllocation{
				{Symbol: "BTC", Percentage: 30},
				{Symbol: "ETH", Percentage: 25, Address: "0x4200000000000000000000000000000000000006"},
				{Symbol: "SOL", Percentage: 10},
				{Symbol: "Top 47 Coins", Percentage: 35},
			},
			ExpectedAPY:   "15-40%",
			MinInvestment: "$1 USDC",
		},
		{
			ID:          "degen-mode",
			Name:        "Degen Mode",
			Description: "Deploy USDC into the top 5 trending tokens on Base with >$100M fully diluted market cap. High risk, high reward.",
			Category:    "Trending Tokens",
			RiskLevel:   domain.RiskHigh,
			Price:       "0.01",
			Allocation: []domain.TokenAllocation{
				{Symbol: "VIRTUAL", Percentage: 25, Address: "0x0b3e328455c4059EEb9e3f84b5543F74E24e7E1b"},
				{Symbol: "AERO", Percentage: 20, Address: "0x940181a94A35A4569E4529A3CDfB74e38FD98631"},
				{Symbol: "BRETT", Percentage: 20, Address: "0x532f27101965dd16442E59d40670FaF5eBB142E4"},
				{Symbol: "DEGEN", Percentage: 20, Address: "0x4ed4E862860beD51a9570b96d89aF5E1B0Efefed"},
				{Symbol: "TOSHI", Percentage: 15, Address: "0xAC1Bd2486aAf3B5C0fc3Fd868558b082a531B2B4"},
			},
			ExpectedAPY:   "50-200% (or -90%)",
			MinInvestment: "$1 USDC",
		},
	}
}
