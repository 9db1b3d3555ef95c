package presenter

import (
	"arbicalc/internal/domain"
	"arbicalc/internal/usecase/quotation"
	"arbicalc/internal/usecase/rates"
)

type Presenter interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)

	ShowSuggestion(s rates.Suggestion)
	ShowProblems(problems []string)
	ShowResult(res domain.TransactionResult)
	ShowQuotation(q quotation.Quotation)
}
