package pdf

import (
	"strings"

	"golang.org/x/text/encoding/charmap"

	"github.com/firmaflow/ledger/internal/render"
)

// Las fuentes base del PDF solo cubren Windows-1252. Los símbolos de moneda
// fuera de esa tabla (₦, ₹, ₵) se imprimen como "<CÓDIGO> ".
var symbolFallback = buildSymbolFallback()

func buildSymbolFallback() *strings.Replacer {
	var pairs []string
	for code, sym := range render.CurrencySymbols() {
		if !encodable(sym) {
			pairs = append(pairs, sym, code+" ")
		}
	}
	return strings.NewReplacer(pairs...)
}

func encodable(s string) bool {
	for _, r := range s {
		if _, ok := charmap.Windows1252.EncodeRune(r); !ok {
			return false
		}
	}
	return true
}

// pdfText adapta s a lo que las fuentes base pueden dibujar. Las runas sin
// representación que no sean símbolos de moneda se reemplazan por "?".
func pdfText(s string) string {
	if encodable(s) {
		return s
	}
	s = symbolFallback.Replace(s)
	return strings.Map(func(r rune) rune {
		if _, ok := charmap.Windows1252.EncodeRune(r); ok {
			return r
		}
		return '?'
	}, s)
}
