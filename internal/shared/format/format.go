package format

import (
	"github.com/leekchan/accounting"
	"github.com/shopspring/decimal"
)

// Формат как в es-BO: "Bs 1.234,56". Округляем до 2 знаков только здесь, при выводе.
var bob = accounting.Accounting{
	Symbol:         "Bs",
	Precision:      2,
	Thousand:       ".",
	Decimal:        ",",
	Format:         "%s %v",
	FormatNegative: "-%s %v",
}

// MoneyBO возвращает строку вида "Bs 100.000.000,00"; округляет так же, как Fixed2.
func MoneyBO(v decimal.Decimal) string {
	return bob.FormatMoneyDecimal(v)
}

// Fixed2: "1234.57" (точка, без разделителей тысяч), как в тексте котировки.
func Fixed2(v decimal.Decimal) string { return v.StringFixed(2) }

func Percent(v decimal.Decimal) string { return v.StringFixed(2) + "%" }
