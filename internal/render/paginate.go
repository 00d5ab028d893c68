package render

import (
	"github.com/samber/lo"

	"github.com/firmaflow/ledger/internal/domain/entity"
)

// DefaultItemsPerPage capacidad de líneas por página en los diseños fijos.
const DefaultItemsPerPage = 15

// PageSlice tramo de líneas asignado a una página y los bloques
// estructurales que le corresponden.
type PageSlice struct {
	Number int // 1-based
	Total  int
	Offset int // índice de la primera línea del tramo dentro de la factura
	Items  []entity.LineItem
}

// First la primera página lleva encabezado, emisor, cliente y detalles.
func (p PageSlice) First() bool { return p.Number == 1 }

// Last la última página lleva totales, notas e información de pago.
func (p PageSlice) Last() bool { return p.Number == p.Total }

// PageCount devuelve max(1, ceil(n/capacity)).
func PageCount(n, capacity int) int {
	if capacity <= 0 {
		capacity = DefaultItemsPerPage
	}
	if n <= 0 {
		return 1
	}
	return (n + capacity - 1) / capacity
}

// Paginate reparte las líneas en páginas de capacity elementos. Siempre
// devuelve al menos una página, aun sin líneas.
func Paginate(items []entity.LineItem, capacity int) []PageSlice {
	if capacity <= 0 {
		capacity = DefaultItemsPerPage
	}
	total := PageCount(len(items), capacity)
	if len(items) == 0 {
		return []PageSlice{{Number: 1, Total: 1}}
	}

	chunks := lo.Chunk(items, capacity)
	out := make([]PageSlice, 0, total)
	for i, chunk := range chunks {
		out = append(out, PageSlice{
			Number: i + 1,
			Total:  total,
			Offset: i * capacity,
			Items:  chunk,
		})
	}
	return out
}
