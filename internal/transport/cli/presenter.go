package cli

import (
	"fmt"
	"io"

	"arbicalc/internal/domain"
	"arbicalc/internal/shared/format"
	"arbicalc/internal/usecase/quotation"
	"arbicalc/internal/usecase/rates"
)

type CLIPresenter struct{ out io.Writer }

func NewCLIPresenter(out io.Writer) *CLIPresenter { return &CLIPresenter{out: out} }

func (c *CLIPresenter) Infof(format string, args ...any) { fmt.Fprintf(c.out, format, args...) }
func (c *CLIPresenter) Warnf(format string, args ...any) { fmt.Fprintf(c.out, format, args...) }

func (c *CLIPresenter) ShowSuggestion(s rates.Suggestion) {
	if s.Degraded {
		fmt.Fprintf(c.out, "Курс P2P недоступен, используем %s (%s)\n", fixedF(s.Price), s.Source)
		if s.Err != nil {
			fmt.Fprintf(c.out, "  причина: %v\n", s.Err)
		}
		return
	}
	fmt.Fprintf(c.out, "Курс %s: %s Bs/USD, предлагаемый: %s\n", s.Source, fixedF(s.Price), fixedF(s.Suggested))
}

func (c *CLIPresenter) ShowProblems(problems []string) {
	fmt.Fprintln(c.out, "\nОшибки ввода:")
	for _, p := range problems {
		fmt.Fprintf(c.out, "  - %s\n", p)
	}
}

func (c *CLIPresenter) ShowResult(r domain.TransactionResult) {
	fmt.Fprintln(c.out, "\n=== Расчёт операции ===")
	row := func(label, value string) { fmt.Fprintf(c.out, "  %-28s %s\n", label, value) }
	row("Всего вложено:", format.MoneyBO(r.TotalInvested))
	row("Получено долларов:", r.DollarsAcquired.String()+" USD")
	row("Курс:", r.ExchangeRate.String()+" Bs/USD")
	row("Итоговая стоимость:", format.MoneyBO(r.FinalValue))
	row("Валовая прибыль:", format.MoneyBO(r.GrossProfit))
	row(fmt.Sprintf("Комиссия LLC (%s%%):", r.LLCCommissionPct), format.MoneyBO(r.LLCCommissionAmount.Neg()))
	row("Остаток после LLC:", format.MoneyBO(r.RemainingAfterLLC))
	row("Доп. расходы:", format.MoneyBO(r.ExtraExpenses.Neg()))
	row("Остаток после расходов:", format.MoneyBO(r.RemainingAfterExpenses))
	row(fmt.Sprintf("Комиссия вывода (%s%%):", r.WithdrawalCommissionPct), format.MoneyBO(r.WithdrawalCommissionAmount.Neg()))
	row("Прибыль клиента:", format.MoneyBO(r.ClientProfit))
	row("Рентабельность:", format.Percent(r.Profitability))
	row("К возврату:", format.MoneyBO(r.TotalReturn))
}

func (c *CLIPresenter) ShowQuotation(q quotation.Quotation) {
	fmt.Fprintln(c.out, "\n=== Котировка ===")
	fmt.Fprintln(c.out, q.Text)
	fmt.Fprintf(c.out, "\nWhatsApp: %s\n", q.ShareURL)
}

func fixedF(v float64) string { return fmt.Sprintf("%.2f", v) }
