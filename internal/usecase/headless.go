package usecase

import (
	"fmt"

	"arbicalc/internal/domain"
	"arbicalc/internal/usecase/calculator"
	"arbicalc/internal/usecase/quotation"
)

type QuotationBuilder interface {
	Build(res domain.TransactionResult) (quotation.Quotation, error)
}

type Outcome struct {
	Result    domain.TransactionResult `json:"result"`
	Quotation quotation.Quotation      `json:"quotation"`
}

// RunHeadless: валидация, расчёт и котировка без ввода-вывода.
// Ошибки: ErrInvalidInput (все проблемы ввода, см. calculator.Problems), ErrDivisionByZero.
func RunHeadless(in domain.TransactionInput, qb QuotationBuilder) (Outcome, error) {
	if err := calculator.Validate(in); err != nil {
		return Outcome{}, err
	}
	res, err := calculator.Calculate(in)
	if err != nil {
		return Outcome{}, err
	}
	q, err := qb.Build(res)
	if err != nil {
		return Outcome{}, fmt.Errorf("quotation: %w", err)
	}
	return Outcome{Result: res, Quotation: q}, nil
}
