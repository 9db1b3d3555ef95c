package usecase

import (
	"context"
	"errors"

	"arbicalc/internal/domain"
	"arbicalc/internal/usecase/calculator"
	"arbicalc/internal/usecase/presenter"
	"arbicalc/internal/usecase/rates"
)

type RateSuggester interface {
	Suggest(ctx context.Context) rates.Suggestion
}

// Prompter: интерактивный ввод формы, suggested подставляется по Enter.
type Prompter interface {
	AskTransaction(d calculator.Defaults, suggested float64) domain.TransactionInput
}

type Flow struct {
	Rates    RateSuggester
	Prompt   Prompter
	Quotes   QuotationBuilder
	Present  presenter.Presenter
	Defaults calculator.Defaults
}

// Run: основной сценарий CLI.
// 1) подсказка курса (P2P или fallback);
// 2) интерактивный ввод формы;
// 3) валидация, расчёт, котировка;
// 4) печать разбивки и текста котировки.
func (f Flow) Run(ctx context.Context) error {
	sg := f.Rates.Suggest(ctx)
	f.Present.ShowSuggestion(sg)

	in := f.Prompt.AskTransaction(f.Defaults, sg.Suggested)

	out, err := RunHeadless(in, f.Quotes)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			f.Present.ShowProblems(calculator.Problems(err))
		}
		return err
	}

	f.Present.ShowResult(out.Result)
	f.Present.ShowQuotation(out.Quotation)
	return nil
}
