package render

import (
	"strings"

	"github.com/samber/lo"
)

// DefaultTemplate diseño fijo usado cuando el nombre pedido no existe.
const DefaultTemplate = "modern"

// Theme tabla de estilo de un diseño fijo. Los cinco diseños comparten el
// mismo orden de secciones y solo difieren en estos valores.
type Theme struct {
	Name         string      `json:"name"`
	Accent       string      `json:"accent"` // acento cuando la petición no trae uno
	FontFamily   string      `json:"fontFamily"`
	HeaderAlign  Align       `json:"headerAlign"`
	HeaderBand   bool        `json:"headerBand"` // encabezado con fondo de acento
	TitleSize    string      `json:"titleSize"`
	Striped      bool        `json:"striped"`
	RuleStyle    BorderStyle `json:"ruleStyle"`
	TotalsBoxed  bool        `json:"totalsBoxed"`
	ItalicNotes  bool        `json:"italicNotes"`
	DetailsAlign Align       `json:"detailsAlign"`
}

var themes = []Theme{
	{
		Name: "modern", Accent: BrandColor, FontFamily: "helvetica", HeaderAlign: AlignLeft, HeaderBand: true,
		TitleSize: "lg", Striped: true, RuleStyle: BorderSolid, DetailsAlign: AlignRight,
	},
	{
		Name: "classic", Accent: "#1F2937", FontFamily: "times", HeaderAlign: AlignCenter,
		TitleSize: "lg", RuleStyle: BorderSolid, TotalsBoxed: true, DetailsAlign: AlignLeft,
	},
	{
		Name: "minimal", Accent: "#111827", FontFamily: "helvetica", HeaderAlign: AlignLeft,
		TitleSize: "md", RuleStyle: BorderDotted, DetailsAlign: AlignLeft,
	},
	{
		Name: "professional", Accent: "#0F766E", FontFamily: "helvetica", HeaderAlign: AlignRight, HeaderBand: true,
		TitleSize: "lg", Striped: true, RuleStyle: BorderSolid, TotalsBoxed: true, DetailsAlign: AlignRight,
	},
	{
		Name: "elegant", Accent: "#7C3AED", FontFamily: "times", HeaderAlign: AlignCenter,
		TitleSize: "xl", RuleStyle: BorderDashed, ItalicNotes: true, DetailsAlign: AlignCenter,
	},
}

// Themes devuelve los diseños fijos en orden de presentación.
func Themes() []Theme {
	return append([]Theme(nil), themes...)
}

// ThemeNames nombres de los diseños fijos.
func ThemeNames() []string {
	return lo.Map(themes, func(t Theme, _ int) string { return t.Name })
}

// LookupTheme busca un diseño fijo por nombre (sin distinguir mayúsculas).
func LookupTheme(name string) (Theme, bool) {
	return lo.Find(themes, func(t Theme) bool {
		return t.Name == strings.ToLower(strings.TrimSpace(name))
	})
}

// fixedLayout secciones de un diseño fijo ya parametrizadas con el acento.
type fixedLayout struct {
	header   HeaderSection
	divider  DividerSection
	company  CompanyInfoSection
	customer CustomerInfoSection
	details  InvoiceDetailsSection
	items    ItemsTableSection
	totals   TotalsSection
	payment  PaymentInfoSection
}

func (t Theme) layout(accent string) fixedLayout {
	header := HeaderSection{Props: Props{
		Padding:    L(4),
		Alignment:  Token(t.HeaderAlign),
		FontSize:   Token(t.TitleSize),
		FontWeight: "bold",
	}}
	if t.HeaderBand {
		header.BackgroundColor = Token(accent)
		header.Color = "#FFFFFF"
	}

	totals := TotalsSection{Props: Props{Padding: L(3), Alignment: "right"}}
	if t.TotalsBoxed {
		totals.Border = Border{Width: N(1), Style: Token(t.RuleStyle), Color: Token(accent)}
	}

	return fixedLayout{
		header: header,
		divider: DividerSection{
			Props:     Props{Color: softGray, Border: Border{Style: Token(t.RuleStyle)}},
			Thickness: N(1),
			Margin:    N(6),
		},
		company:  CompanyInfoSection{Props: Props{Padding: L(2), FontSize: "sm"}, Title: "From"},
		customer: CustomerInfoSection{Props: Props{Padding: L(2), FontSize: "sm"}},
		details:  InvoiceDetailsSection{Props: Props{Padding: L(2), FontSize: "sm", Alignment: Token(t.DetailsAlign)}},
		items:    ItemsTableSection{Props: Props{Padding: L(2), FontSize: "sm"}, Striped: F(t.Striped)},
		totals:   totals,
		payment:  PaymentInfoSection{Props: Props{Padding: L(2), FontSize: "sm"}},
	}
}
