package domain

import (
	"context"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

// Базовые доменные сущности

// Payment — один взнос клиента (Bs). Порядок важен только для отображения.
type Payment struct {
	ID     string          `json:"id"`
	Amount decimal.Decimal `json:"amount"`
}

type TransactionInput struct {
	Payments          []Payment       `json:"payments"`
	DollarsAcquired   decimal.Decimal `json:"dollarsAcquired"`
	ExchangeRate      decimal.Decimal `json:"exchangeRate"`
	LLCCommissionPct  decimal.Decimal `json:"llcCommissionPct"`
	UserCommissionPct decimal.Decimal `json:"userCommissionPct"`
	ExtraExpenses     decimal.Decimal `json:"extraExpenses"`
}

// TransactionResult — полностью вычисленная запись. После создания не меняется.
type TransactionResult struct {
	TotalInvested              decimal.Decimal `json:"totalInvested"`
	DollarsAcquired            decimal.Decimal `json:"dollarsAcquired"`
	ExchangeRate               decimal.Decimal `json:"exchangeRate"`
	FinalValue                 decimal.Decimal `json:"finalValue"`
	GrossProfit                decimal.Decimal `json:"grossProfit"`
	LLCCommissionPct           decimal.Decimal `json:"llcCommission"`
	LLCCommissionAmount        decimal.Decimal `json:"llcCommissionAmount"`
	RemainingAfterLLC          decimal.Decimal `json:"remainingAfterLLC"`
	ExtraExpenses              decimal.Decimal `json:"extraExpenses"`
	RemainingAfterExpenses     decimal.Decimal `json:"remainingAfterExpenses"`
	WithdrawalCommissionPct    decimal.Decimal `json:"withdrawalCommission"`
	WithdrawalCommissionAmount decimal.Decimal `json:"withdrawalCommissionAmount"`
	ClientProfit               decimal.Decimal `json:"clientProfit"`
	Profitability              decimal.Decimal `json:"profitability"`
	TotalReturn                decimal.Decimal `json:"totalReturn"`
}

// RateQuote — итог поиска курса.
// Degraded=true: ни один источник не ответил, Rate взят из fallback, LastErr хранит последнюю ошибку.
type RateQuote struct {
	Rate     float64
	Source   string
	Degraded bool
	LastErr  error
}

// LastRate — последний успешно полученный курс; хранится в кэше и служит fallback'ом.
type LastRate struct {
	Rate   float64   `json:"rate"`
	Source string    `json:"source"`
	At     time.Time `json:"at"`
}

// Контракт источника курса. Источник сам делает запрос и разбирает ответ;
// значения <= 0 резолвер считает отказом источника.
type PriceSource interface {
	Name() string
	Quote(ctx context.Context, client *http.Client) (float64, error)
}
