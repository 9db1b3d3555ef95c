package calculator

import (
	"github.com/shopspring/decimal"

	"arbicalc/internal/domain"
)

type Defaults struct {
	ExchangeRate      decimal.Decimal `json:"exchangeRate"`
	LLCCommissionPct  decimal.Decimal `json:"llcCommissionPct"`
	UserCommissionPct decimal.Decimal `json:"userCommissionPct"`
}

func StandardDefaults() Defaults {
	return Defaults{
		ExchangeRate:      decimal.RequireFromString("6.97"),
		LLCCommissionPct:  decimal.NewFromInt(30),
		UserCommissionPct: decimal.NewFromInt(50),
	}
}

// Input — пустая форма: один незаполненный взнос, расходы 0.
func (d Defaults) Input() domain.TransactionInput {
	return domain.TransactionInput{
		Payments:          []domain.Payment{{ID: "1", Amount: decimal.Zero}},
		ExchangeRate:      d.ExchangeRate,
		LLCCommissionPct:  d.LLCCommissionPct,
		UserCommissionPct: d.UserCommissionPct,
		ExtraExpenses:     decimal.Zero,
	}
}
