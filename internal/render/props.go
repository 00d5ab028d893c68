package render

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Los tipos de este archivo decodifican JSON de forma tolerante: un valor con
// tipo inesperado queda como "no definido" en lugar de abortar el descriptor.

// Token es un valor textual declarativo (alineación, tamaño, color...).
type Token string

// UnmarshalJSON acepta strings, números y booleanos; cualquier otra cosa queda vacía.
func (t *Token) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*t = ""
			return nil
		}
		*t = Token(strings.TrimSpace(s))
		return nil
	}
	if data[0] == '{' || data[0] == '[' {
		*t = ""
		return nil
	}
	*t = Token(string(data))
	return nil
}

// String devuelve el token normalizado en minúsculas.
func (t Token) String() string { return strings.ToLower(string(t)) }

// Level es un entero opcional (por ejemplo el nivel de padding 0–8).
type Level struct {
	N   int
	Set bool
}

// L construye un Level definido.
func L(n int) Level { return Level{N: n, Set: true} }

// UnmarshalJSON acepta números y strings numéricos enteros; fracciones como
// 2.5 y lo demás quedan sin definir.
func (l *Level) UnmarshalJSON(data []byte) error {
	*l = Level{}
	f, ok := parseNumber(data)
	if !ok || math.IsInf(f, 0) || f != math.Trunc(f) {
		return nil
	}
	*l = Level{N: int(f), Set: true}
	return nil
}

// MarshalJSON serializa el nivel o null.
func (l Level) MarshalJSON() ([]byte, error) {
	if !l.Set {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(l.N)), nil
}

// Number es un decimal opcional (grosor de borde, margen...).
type Number struct {
	F   float64
	Set bool
}

// N construye un Number definido.
func N(f float64) Number { return Number{F: f, Set: true} }

// UnmarshalJSON acepta números y strings numéricos ("2", "2px").
func (n *Number) UnmarshalJSON(data []byte) error {
	*n = Number{}
	f, ok := parseNumber(data)
	if !ok {
		return nil
	}
	*n = Number{F: f, Set: true}
	return nil
}

// MarshalJSON serializa el número o null.
func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Set {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(n.F, 'f', -1, 64)), nil
}

// Or devuelve el valor o def si no está definido.
func (n Number) Or(def float64) float64 {
	if !n.Set {
		return def
	}
	return n.F
}

// Flag es un booleano opcional.
type Flag struct {
	Value bool
	Set   bool
}

// F construye un Flag definido.
func F(v bool) Flag { return Flag{Value: v, Set: true} }

// UnmarshalJSON acepta true/false y sus versiones en string.
func (f *Flag) UnmarshalJSON(data []byte) error {
	*f = Flag{}
	s := strings.Trim(string(bytes.TrimSpace(data)), `"`)
	switch strings.ToLower(s) {
	case "true", "1", "yes":
		*f = Flag{Value: true, Set: true}
	case "false", "0", "no":
		*f = Flag{Value: false, Set: true}
	}
	return nil
}

// MarshalJSON serializa el flag o null.
func (f Flag) MarshalJSON() ([]byte, error) {
	if !f.Set {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatBool(f.Value)), nil
}

// Or devuelve el valor o def si no está definido.
func (f Flag) Or(def bool) bool {
	if !f.Set {
		return def
	}
	return f.Value
}

func parseNumber(data []byte) (float64, bool) {
	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		return 0, false
	}
	s = strings.Trim(s, `"`)
	s = strings.TrimSuffix(strings.TrimSpace(s), "px")
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Border propiedades declarativas de borde.
type Border struct {
	Width Number `json:"width"`
	Style Token  `json:"style"`
	Color Token  `json:"color"`
}

// Props atributos declarativos de estilo comunes a todas las secciones.
type Props struct {
	Padding         Level  `json:"padding"`
	Alignment       Token  `json:"alignment"`
	FontSize        Token  `json:"fontSize"`
	FontWeight      Token  `json:"fontWeight"`
	Color           Token  `json:"color"`
	BackgroundColor Token  `json:"backgroundColor"`
	Border          Border `json:"border"`
}
