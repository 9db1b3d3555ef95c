package calculator

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arbicalc/internal/domain"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func requireDec(t *testing.T, want string, got decimal.Decimal, field string) {
	t.Helper()
	require.Truef(t, d(want).Equal(got), "%s=%s want=%s", field, got.String(), want)
}

func payments(amounts ...string) []domain.Payment {
	out := make([]domain.Payment, 0, len(amounts))
	for i, a := range amounts {
		out = append(out, domain.Payment{ID: string(rune('1' + i)), Amount: d(a)})
	}
	return out
}

func reference() domain.TransactionInput {
	return domain.TransactionInput{
		Payments:          payments("200", "100.85"),
		DollarsAcquired:   d("23"),
		ExchangeRate:      d("13.50"),
		LLCCommissionPct:  d("30"),
		UserCommissionPct: d("50"),
		ExtraExpenses:     decimal.Zero,
	}
}

func TestCalculate_ReferenceScenario(t *testing.T) {
	res, err := Calculate(reference())
	require.NoError(t, err)

	requireDec(t, "300.85", res.TotalInvested, "totalInvested")
	requireDec(t, "310.50", res.FinalValue, "finalValue")
	requireDec(t, "9.65", res.GrossProfit, "grossProfit")
	requireDec(t, "2.895", res.LLCCommissionAmount, "llcCommissionAmount")
	requireDec(t, "6.755", res.RemainingAfterLLC, "remainingAfterLLC")
	requireDec(t, "6.755", res.RemainingAfterExpenses, "remainingAfterExpenses")
	requireDec(t, "50", res.WithdrawalCommissionPct, "withdrawalCommissionPct")
	requireDec(t, "3.3775", res.WithdrawalCommissionAmount, "withdrawalCommissionAmount")
	requireDec(t, "3.3775", res.ClientProfit, "clientProfit")
	requireDec(t, "304.2275", res.TotalReturn, "totalReturn")
	requireDec(t, "1.12", res.Profitability.Round(2), "profitability")

	// входные значения переносятся в результат как есть
	requireDec(t, "23", res.DollarsAcquired, "dollarsAcquired")
	requireDec(t, "13.5", res.ExchangeRate, "exchangeRate")
	requireDec(t, "30", res.LLCCommissionPct, "llcCommission")
}

func TestCalculate_ExtraExpenses(t *testing.T) {
	in := reference()
	in.ExtraExpenses = d("1.755")

	res, err := Calculate(in)
	require.NoError(t, err)

	requireDec(t, "5", res.RemainingAfterExpenses, "remainingAfterExpenses")
	requireDec(t, "2.5", res.WithdrawalCommissionAmount, "withdrawalCommissionAmount")
	requireDec(t, "2.5", res.ClientProfit, "clientProfit")
	requireDec(t, "303.35", res.TotalReturn, "totalReturn")
}

func TestCalculate_Deterministic(t *testing.T) {
	a, err := Calculate(reference())
	require.NoError(t, err)
	b, err := Calculate(reference())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestTotalInvested_OrderIndependent(t *testing.T) {
	fwd := payments("0.10", "200", "0.20", "100.85", "0")
	rev := payments("0", "100.85", "0.20", "200", "0.10")

	assert.True(t, TotalInvested(fwd).Equal(TotalInvested(rev)))
	assert.True(t, d("301.15").Equal(TotalInvested(fwd)))
}

func TestCalculate_IdentityCase(t *testing.T) {
	in := reference()
	in.LLCCommissionPct = decimal.Zero
	in.UserCommissionPct = d("100")
	in.ExtraExpenses = decimal.Zero

	res, err := Calculate(in)
	require.NoError(t, err)

	assert.True(t, res.ClientProfit.Equal(res.GrossProfit))
	assert.True(t, res.TotalReturn.Equal(res.FinalValue))
	requireDec(t, "0", res.WithdrawalCommissionPct, "withdrawalCommissionPct")
}

func TestCalculate_LossPropagatesSign(t *testing.T) {
	in := reference()
	in.ExchangeRate = d("6.97") // 23 × 6.97 = 160.31 < 300.85

	res, err := Calculate(in)
	require.NoError(t, err)

	requireDec(t, "-140.54", res.GrossProfit, "grossProfit")
	assert.True(t, res.GrossProfit.IsNegative())
	assert.True(t, res.RemainingAfterLLC.IsNegative())
	assert.True(t, res.ClientProfit.IsNegative())
	assert.True(t, res.Profitability.IsNegative())
	assert.True(t, res.TotalReturn.LessThan(res.TotalInvested))
	// без обнуления: -140.54 × 0.7 × 0.5
	requireDec(t, "-49.189", res.ClientProfit, "clientProfit")
}

func TestCalculate_ZeroInvestedIsInvariantViolation(t *testing.T) {
	in := reference()
	in.Payments = payments("0", "0")

	_, err := Calculate(in)
	require.ErrorIs(t, err, domain.ErrDivisionByZero)
}

func TestDefaults_Input(t *testing.T) {
	in := StandardDefaults().Input()

	require.Len(t, in.Payments, 1)
	assert.True(t, in.Payments[0].Amount.IsZero())
	requireDec(t, "6.97", in.ExchangeRate, "exchangeRate")
	requireDec(t, "30", in.LLCCommissionPct, "llc")
	requireDec(t, "50", in.UserCommissionPct, "user")
	assert.True(t, in.ExtraExpenses.IsZero())
}
