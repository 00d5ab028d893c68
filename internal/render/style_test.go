package render_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/firmaflow/ledger/internal/render"
)

func TestResolveStyle_Defaults(t *testing.T) {
	s := render.ResolveStyle(render.Props{})
	assert.Equal(t, 16.0, s.Padding)
	assert.Equal(t, 10.0, s.FontSize)
	assert.False(t, s.Bold)
	assert.Equal(t, render.AlignLeft, s.TextAlign)
	assert.Equal(t, "start", s.CrossAlign)
	assert.Empty(t, s.Background)
	assert.Nil(t, s.Border)
}

func TestResolveStyle_Escalas(t *testing.T) {
	cases := []struct {
		padding int
		want    float64
	}{{0, 0}, {1, 4}, {2, 8}, {3, 12}, {4, 16}, {6, 24}, {8, 32}, {5, 16}}
	for _, tc := range cases {
		s := render.ResolveStyle(render.Props{Padding: render.L(tc.padding)})
		assert.Equal(t, tc.want, s.Padding, "padding %d", tc.padding)
	}

	sizes := map[string]float64{"xs": 8, "sm": 9, "lg": 12, "4xl": 24, "gigante": 10}
	for tok, want := range sizes {
		s := render.ResolveStyle(render.Props{FontSize: render.Token(tok)})
		assert.Equal(t, want, s.FontSize, tok)
	}
}

func TestLevel_FraccionQuedaSinDefinir(t *testing.T) {
	var l render.Level
	require.NoError(t, json.Unmarshal([]byte(`2.5`), &l))
	assert.False(t, l.Set)

	require.NoError(t, json.Unmarshal([]byte(`"3"`), &l))
	assert.Equal(t, render.L(3), l)

	require.NoError(t, json.Unmarshal([]byte(`2.0`), &l))
	assert.Equal(t, render.L(2), l)

	var p render.Props
	require.NoError(t, json.Unmarshal([]byte(`{"padding":2.5}`), &p))
	assert.Equal(t, 16.0, render.ResolveStyle(p).Padding)
}

func TestResolveStyle_AlineacionYColores(t *testing.T) {
	s := render.ResolveStyle(render.Props{
		Alignment:       "RIGHT",
		FontWeight:      "bold",
		Color:           "#333",
		BackgroundColor: "transparent",
	})
	assert.Equal(t, render.AlignRight, s.TextAlign)
	assert.Equal(t, "end", s.CrossAlign)
	assert.True(t, s.Bold)
	assert.Equal(t, "#333", s.Color)
	assert.Empty(t, s.Background)
}

func TestResolveStyle_Borde(t *testing.T) {
	s := render.ResolveStyle(render.Props{Border: render.Border{Width: render.N(0)}})
	assert.Nil(t, s.Border, "ancho 0 no genera borde")

	s = render.ResolveStyle(render.Props{Border: render.Border{Width: render.N(2), Style: "dashed"}})
	require.NotNil(t, s.Border)
	assert.Equal(t, 2.0, s.Border.Width)
	assert.Equal(t, render.BorderDashed, s.Border.Style)
	assert.Equal(t, "#E5E7EB", s.Border.Color)
	assert.Equal(t, 4.0, s.Border.Radius)
}
