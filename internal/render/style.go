package render

// ── Escalas ───────────────────────────────────────────────────────────────────

const (
	defaultPadding  = 16.0
	defaultFontSize = 10.0
	borderRadius    = 4.0
)

// paddingScale nivel de padding → puntos.
var paddingScale = map[int]float64{0: 0, 1: 4, 2: 8, 3: 12, 4: 16, 6: 24, 8: 32}

// fontScale token de tamaño → puntos.
var fontScale = map[string]float64{
	"xs":   8,
	"sm":   9,
	"md":   10,
	"base": 10,
	"lg":   12,
	"xl":   14,
	"2xl":  16,
	"3xl":  20,
	"4xl":  24,
}

// Align alineación horizontal del texto.
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// BorderStyle estilo de línea del borde.
type BorderStyle string

const (
	BorderSolid  BorderStyle = "solid"
	BorderDashed BorderStyle = "dashed"
	BorderDotted BorderStyle = "dotted"
)

// ResolvedBorder borde concreto; solo existe si el ancho es > 0.
type ResolvedBorder struct {
	Width  float64     `json:"width"`
	Style  BorderStyle `json:"style"`
	Color  string      `json:"color"`
	Radius float64     `json:"radius"`
}

// Style atributos visuales concretos de un bloque.
type Style struct {
	Padding    float64         `json:"padding"`
	FontSize   float64         `json:"fontSize"`
	Bold       bool            `json:"bold"`
	TextAlign  Align           `json:"textAlign"`
	CrossAlign string          `json:"crossAlign"` // start, center, end
	Color      string          `json:"color,omitempty"`
	Background string          `json:"background,omitempty"`
	Border     *ResolvedBorder `json:"border,omitempty"`
}

// ResolveStyle traduce las props declarativas a un estilo concreto.
// Nunca falla: cualquier valor ausente o inválido toma el valor por defecto.
func ResolveStyle(p Props) Style {
	s := Style{
		Padding:  defaultPadding,
		FontSize: defaultFontSize,
		Bold:     p.FontWeight.String() == "bold",
		Color:    sanitizeColor(string(p.Color), ""),
	}

	if p.Padding.Set {
		if v, ok := paddingScale[p.Padding.N]; ok {
			s.Padding = v
		}
	}
	if v, ok := fontScale[p.FontSize.String()]; ok {
		s.FontSize = v
	}

	s.TextAlign, s.CrossAlign = resolveAlign(p.Alignment)

	if bg := p.BackgroundColor.String(); bg != "" && bg != "transparent" {
		s.Background = string(p.BackgroundColor)
	}

	if p.Border.Width.Set && p.Border.Width.F > 0 {
		s.Border = &ResolvedBorder{
			Width:  p.Border.Width.F,
			Style:  resolveBorderStyle(p.Border.Style),
			Color:  sanitizeColor(string(p.Border.Color), "#E5E7EB"),
			Radius: borderRadius,
		}
	}
	return s
}

func resolveAlign(t Token) (Align, string) {
	switch t.String() {
	case "center":
		return AlignCenter, "center"
	case "right":
		return AlignRight, "end"
	default:
		return AlignLeft, "start"
	}
}

func resolveBorderStyle(t Token) BorderStyle {
	switch t.String() {
	case "dashed":
		return BorderDashed
	case "dotted":
		return BorderDotted
	default:
		return BorderSolid
	}
}
