package render

import (
	"regexp"
	"strconv"
	"strings"
)

// BrandColor color de acento cuando el llamador no envía uno.
const BrandColor = "#2563EB"

var hexColorPattern = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// sanitizeColor devuelve value si es un color hex válido; si no, fallback.
func sanitizeColor(value, fallback string) string {
	trimmed := strings.TrimSpace(value)
	if hexColorPattern.MatchString(trimmed) {
		return strings.ToUpper(trimmed)
	}
	return fallback
}

// AccentOrDefault normaliza el color de acento, con BrandColor como respaldo.
func AccentOrDefault(accent string) string {
	return sanitizeColor(accent, BrandColor)
}

// ParseHexColor convierte "#RGB" o "#RRGGBB" en componentes 0–255.
func ParseHexColor(s string) (r, g, b int, ok bool) {
	s = strings.TrimSpace(s)
	if !hexColorPattern.MatchString(s) {
		return 0, 0, 0, false
	}
	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return int(v >> 16 & 0xFF), int(v >> 8 & 0xFF), int(v & 0xFF), true
}
