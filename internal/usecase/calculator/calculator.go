// Package calculator — расчёт разбивки прибыли арбитражной операции.
// Чистая функция: без I/O и скрытого состояния, вся арифметика в decimal,
// округление только на этапе отображения.
package calculator

import (
	"fmt"

	"github.com/shopspring/decimal"

	"arbicalc/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// TotalInvested не зависит от порядка взносов.
func TotalInvested(payments []domain.Payment) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		total = total.Add(p.Amount)
	}
	return total
}

// Calculate предполагает уже проверенный вход (см. Validate).
// Единственная ошибка: ErrDivisionByZero при нулевой сумме взносов.
func Calculate(in domain.TransactionInput) (domain.TransactionResult, error) {
	totalInvested := TotalInvested(in.Payments)
	finalValue := in.DollarsAcquired.Mul(in.ExchangeRate)
	grossProfit := finalValue.Sub(totalInvested)

	llcAmount := grossProfit.Mul(pct(in.LLCCommissionPct))
	remainingAfterLLC := grossProfit.Sub(llcAmount)
	remainingAfterExpenses := remainingAfterLLC.Sub(in.ExtraExpenses)

	// Комиссия за вывод = 100 - комиссия пользователя.
	withdrawalPct := hundred.Sub(in.UserCommissionPct)
	withdrawalAmount := remainingAfterExpenses.Mul(pct(withdrawalPct))
	clientProfit := remainingAfterExpenses.Sub(withdrawalAmount)

	if totalInvested.IsZero() {
		return domain.TransactionResult{}, fmt.Errorf("profitability: %w", domain.ErrDivisionByZero)
	}
	profitability := clientProfit.Div(totalInvested).Mul(hundred)

	return domain.TransactionResult{
		TotalInvested:              totalInvested,
		DollarsAcquired:            in.DollarsAcquired,
		ExchangeRate:               in.ExchangeRate,
		FinalValue:                 finalValue,
		GrossProfit:                grossProfit,
		LLCCommissionPct:           in.LLCCommissionPct,
		LLCCommissionAmount:        llcAmount,
		RemainingAfterLLC:          remainingAfterLLC,
		ExtraExpenses:              in.ExtraExpenses,
		RemainingAfterExpenses:     remainingAfterExpenses,
		WithdrawalCommissionPct:    withdrawalPct,
		WithdrawalCommissionAmount: withdrawalAmount,
		ClientProfit:               clientProfit,
		Profitability:              profitability,
		TotalReturn:                totalInvested.Add(clientProfit),
	}, nil
}

// pct переводит проценты в долю без потери точности (сдвиг запятой).
func pct(p decimal.Decimal) decimal.Decimal { return p.Shift(-2) }
