package render

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultCurrency se usa cuando la factura no trae código de moneda.
const DefaultCurrency = "NGN"

// currencySymbols tabla fija de símbolos; solo lectura.
var currencySymbols = map[string]string{
	"NGN": "₦",
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"CNY": "¥",
	"INR": "₹",
	"ZAR": "R",
	"KES": "KSh",
	"GHS": "₵",
}

// CurrencySymbols devuelve una copia de la tabla código → símbolo.
func CurrencySymbols() map[string]string {
	out := make(map[string]string, len(currencySymbols))
	for k, v := range currencySymbols {
		out[k] = v
	}
	return out
}

// CurrencyPrefix devuelve el prefijo a anteponer al monto: el símbolo conocido
// o "<CÓDIGO> " para códigos desconocidos.
func CurrencyPrefix(code string) string {
	code = normalizeCurrency(code)
	if sym, ok := currencySymbols[code]; ok {
		return sym
	}
	return code + " "
}

// FormatCurrency formatea amount con dos decimales, separador de miles "," y
// el prefijo de la moneda. Nunca falla, aun con códigos desconocidos. El signo
// de los negativos va después del prefijo.
//
//	FormatCurrency(decimal.NewFromInt(1075), "NGN") → "₦1,075.00"
//	FormatCurrency(decimal.NewFromInt(10), "XYZ")   → "XYZ 10.00"
//	FormatCurrency(decimal.NewFromInt(-10), "XYZ")  → "XYZ -10.00"
func FormatCurrency(amount decimal.Decimal, code string) string {
	prefix := CurrencyPrefix(code)
	rounded := amount.Round(2)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
	}
	fixed := rounded.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(fixed, ".")
	return prefix + sign + groupThousands(intPart) + "." + frac
}

// FormatFloat como FormatCurrency pero desde float64; NaN e Inf cuentan como 0.
func FormatFloat(amount float64, code string) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		amount = 0
	}
	return FormatCurrency(decimal.NewFromFloat(amount), code)
}

// FormatNullable formatea un monto opcional; nil cuenta como 0.
func FormatNullable(amount *decimal.Decimal, code string) string {
	if amount == nil {
		return FormatCurrency(decimal.Zero, code)
	}
	return FormatCurrency(*amount, code)
}

func normalizeCurrency(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return DefaultCurrency
	}
	return code
}

// groupThousands inserta comas de miles en un string de dígitos.
// Ej: "25000" → "25,000", "1000000" → "1,000,000"
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
