package calculator

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/shopspring/decimal"

	"arbicalc/internal/domain"
)

// Validate собирает все нарушения сразу (как форма), а не первое попавшееся.
// Ошибка оборачивает domain.ErrInvalidInput.
func Validate(in domain.TransactionInput) error {
	var merr *multierror.Error

	if len(in.Payments) == 0 {
		merr = multierror.Append(merr, errors.New("at least one payment is required"))
	}
	positive := false
	for i, p := range in.Payments {
		if p.Amount.IsNegative() {
			merr = multierror.Append(merr, fmt.Errorf("payment %d: amount must not be negative", i+1))
		}
		if p.Amount.IsPositive() {
			positive = true
		}
	}
	if len(in.Payments) > 0 && !positive {
		merr = multierror.Append(merr, errors.New("at least one payment must be greater than 0"))
	}
	if !in.DollarsAcquired.IsPositive() {
		merr = multierror.Append(merr, errors.New("dollars acquired must be greater than 0"))
	}
	if !in.ExchangeRate.IsPositive() {
		merr = multierror.Append(merr, errors.New("exchange rate must be greater than 0"))
	}
	if !inPercentRange(in.LLCCommissionPct) {
		merr = multierror.Append(merr, errors.New("LLC commission must be between 0% and 100%"))
	}
	if !inPercentRange(in.UserCommissionPct) {
		merr = multierror.Append(merr, errors.New("user commission must be between 0% and 100%"))
	}
	if in.ExtraExpenses.IsNegative() {
		merr = multierror.Append(merr, errors.New("extra expenses must not be negative"))
	}

	if err := merr.ErrorOrNil(); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	return nil
}

// Problems раскладывает ошибку Validate на отдельные сообщения.
func Problems(err error) []string {
	var merr *multierror.Error
	if !errors.As(err, &merr) {
		if err == nil {
			return nil
		}
		return []string{err.Error()}
	}
	out := make([]string, 0, len(merr.Errors))
	for _, e := range merr.Errors {
		out = append(out, e.Error())
	}
	return out
}

func inPercentRange(p decimal.Decimal) bool {
	return !p.IsNegative() && p.LessThanOrEqual(hundred)
}
