package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"arbicalc/internal/domain"
	"arbicalc/internal/usecase/calculator"
)

var hundred = decimal.NewFromInt(100)

// Prompter опрашивает пользователя в терминале.
type Prompter struct {
	r   *bufio.Reader
	out io.Writer
	eof bool
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{r: bufio.NewReader(in), out: out}
}

// AskTransaction собирает форму. suggested > 0 подставляется как курс по Enter,
// иначе курс из d. Проценты и расходы по Enter берутся из d.
func (p *Prompter) AskTransaction(d calculator.Defaults, suggested float64) domain.TransactionInput {
	in := domain.TransactionInput{}

	fmt.Fprintln(p.out, "\nВзносы клиента (Bs). Пустая строка — закончить ввод.")
	in.Payments = p.askPayments()

	in.DollarsAcquired = p.askDecimal("\nСколько долларов получено (USD): ", decimal.Zero, false, mustPositive)

	rate := d.ExchangeRate
	if suggested > 0 {
		rate = decimal.NewFromFloat(suggested)
	}
	in.ExchangeRate = p.askDecimal(
		fmt.Sprintf("Курс продажи, Bs за 1 USD (Enter = %s): ", rate), rate, true, mustPositive)

	in.LLCCommissionPct = p.askDecimal(
		fmt.Sprintf("Комиссия LLC, %% (Enter = %s): ", d.LLCCommissionPct), d.LLCCommissionPct, true, mustPercent)
	in.UserCommissionPct = p.askDecimal(
		fmt.Sprintf("Комиссия пользователя, %% (Enter = %s): ", d.UserCommissionPct), d.UserCommissionPct, true, mustPercent)
	in.ExtraExpenses = p.askDecimal("Дополнительные расходы, Bs (Enter = 0): ", decimal.Zero, true, mustNonNegative)

	return in
}

// askPayments: хотя бы один взнос > 0, пустая строка завершает ввод.
func (p *Prompter) askPayments() []domain.Payment {
	var (
		out      []domain.Payment
		positive bool
	)
	for {
		fmt.Fprintf(p.out, "Взнос #%d: ", len(out)+1)
		raw, ok := p.readLine()
		if !ok {
			return out
		}
		if raw == "" {
			if positive {
				return out
			}
			fmt.Fprintln(p.out, "Нужен хотя бы один взнос больше 0.")
			continue
		}
		v, err := parseDecimal(raw)
		if err == nil && v.IsNegative() {
			err = errors.New("negative")
		}
		if err != nil {
			fmt.Fprintln(p.out, "Введите неотрицательное число (например, 200 или 100,85).")
			continue
		}
		if v.IsPositive() {
			positive = true
		}
		out = append(out, domain.Payment{ID: strconv.Itoa(len(out) + 1), Amount: v})
	}
}

type rule struct {
	ok   func(decimal.Decimal) bool
	hint string
}

var (
	mustPositive    = rule{func(v decimal.Decimal) bool { return v.IsPositive() }, "Введите число больше 0."}
	mustNonNegative = rule{func(v decimal.Decimal) bool { return !v.IsNegative() }, "Введите число не меньше 0."}
	mustPercent     = rule{func(v decimal.Decimal) bool { return !v.IsNegative() && v.LessThanOrEqual(hundred) }, "Введите процент от 0 до 100."}
)

// askDecimal повторяет вопрос, пока значение не пройдёт rule.
// На EOF возвращает def: форма всё равно пройдёт через Validate.
func (p *Prompter) askDecimal(prompt string, def decimal.Decimal, allowDefault bool, r rule) decimal.Decimal {
	for {
		fmt.Fprint(p.out, prompt)
		raw, ok := p.readLine()
		if !ok {
			return def
		}
		if raw == "" {
			if allowDefault {
				return def
			}
			fmt.Fprintln(p.out, r.hint)
			continue
		}
		v, err := parseDecimal(raw)
		if err == nil && r.ok(v) {
			return v
		}
		fmt.Fprintln(p.out, r.hint)
	}
}

func (p *Prompter) readLine() (string, bool) {
	if p.eof {
		return "", false
	}
	raw, err := p.r.ReadString('\n')
	if err != nil {
		p.eof = true
		raw = strings.TrimSpace(raw)
		return raw, raw != ""
	}
	return strings.TrimSpace(raw), true
}

// parseDecimal принимает запятую как десятичный разделитель и пробелы между разрядами.
func parseDecimal(raw string) (decimal.Decimal, error) {
	raw = strings.ReplaceAll(raw, " ", "")
	raw = strings.ReplaceAll(raw, ",", ".")
	return decimal.NewFromString(raw)
}
