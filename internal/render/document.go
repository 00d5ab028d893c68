package render

import "strings"

// NodeKind tipo de nodo visual dentro de un bloque.
type NodeKind string

const (
	NodeText  NodeKind = "text"
	NodeField NodeKind = "field" // fila etiqueta: valor
	NodeTable NodeKind = "table"
	NodeRule  NodeKind = "rule"
	NodeImage NodeKind = "image"
)

// Font atributos tipográficos de un nodo.
type Font struct {
	Size      float64 `json:"size"`
	Bold      bool    `json:"bold,omitempty"`
	Italic    bool    `json:"italic,omitempty"`
	Underline bool    `json:"underline,omitempty"`
	Color     string  `json:"color,omitempty"`
}

// Column columna de tabla; Span usa una grilla de 12.
type Column struct {
	Header string `json:"header"`
	Span   int    `json:"span"`
	Align  Align  `json:"align"`
}

// Table tabla de texto.
type Table struct {
	Columns     []Column   `json:"columns"`
	Rows        [][]string `json:"rows"`
	HeaderColor string     `json:"headerColor"`
	Striped     bool       `json:"striped,omitempty"`
}

// Rule línea horizontal.
type Rule struct {
	Thickness float64     `json:"thickness"`
	Color     string      `json:"color"`
	Margin    float64     `json:"margin"`
	Style     BorderStyle `json:"style"`
}

// Image imagen incrustada (logo).
type Image struct {
	Data   []byte  `json:"-"`
	Format string  `json:"format"`
	Height float64 `json:"height"`
}

// Node elemento visual mínimo.
type Node struct {
	Kind  NodeKind `json:"kind"`
	Text  string   `json:"text,omitempty"`
	Label string   `json:"label,omitempty"`
	Value string   `json:"value,omitempty"`
	Font  Font     `json:"font"`
	Align Align    `json:"align,omitempty"`
	Table *Table   `json:"table,omitempty"`
	Rule  *Rule    `json:"rule,omitempty"`
	Image *Image   `json:"image,omitempty"`
}

// Content texto plano del nodo; los campos se muestran como "Etiqueta: valor".
func (n Node) Content() string {
	switch n.Kind {
	case NodeText:
		return n.Text
	case NodeField:
		return n.Label + ": " + n.Value
	case NodeTable:
		if n.Table == nil {
			return ""
		}
		lines := make([]string, 0, len(n.Table.Rows))
		for _, r := range n.Table.Rows {
			lines = append(lines, strings.Join(r, " | "))
		}
		return strings.Join(lines, "\n")
	}
	return ""
}

// Block resultado de renderizar una sección (o un bloque estructural).
type Block struct {
	Name  string `json:"name"`
	Style Style  `json:"style"`
	Nodes []Node `json:"nodes"`
}

// Lines contenido textual del bloque, un elemento por nodo con texto.
func (b Block) Lines() []string {
	var out []string
	for _, n := range b.Nodes {
		if c := n.Content(); c != "" {
			out = append(out, c)
		}
	}
	return out
}

// Nombres de bloques estructurales que no corresponden a un tipo de sección.
const (
	BlockContinued   = "continued"
	BlockNotes       = "notes"
	BlockPlaceholder = "placeholder"
)

// Page página del documento.
type Page struct {
	Number int     `json:"number"`
	Blocks []Block `json:"blocks"`
	Footer string  `json:"footer"`
}

// Block devuelve el primer bloque con ese nombre.
func (p Page) Block(name string) (Block, bool) {
	for _, b := range p.Blocks {
		if b.Name == name {
			return b, true
		}
	}
	return Block{}, false
}

// Has indica si la página contiene un bloque con ese nombre.
func (p Page) Has(name string) bool {
	_, ok := p.Block(name)
	return ok
}

// PageSetup formato físico del documento.
type PageSetup struct {
	Size         string  `json:"size"`
	MarginPt     float64 `json:"marginPt"`
	BaseFontSize float64 `json:"baseFontSize"`
}

// DefaultPageSetup A4, márgenes de 40pt, fuente base de 10pt.
func DefaultPageSetup() PageSetup {
	return PageSetup{Size: "A4", MarginPt: 40, BaseFontSize: 10}
}

// Document documento paginado listo para un backend de impresión/PDF.
type Document struct {
	Mode     string    `json:"mode"`     // fixed | custom
	Template string    `json:"template"` // nombre del diseño fijo o "custom"
	Title    string    `json:"title"`
	Author   string    `json:"author,omitempty"`
	Accent   string    `json:"accent"`
	Font     string    `json:"font"` // familia tipográfica
	Setup    PageSetup `json:"setup"`
	Pages    []Page    `json:"pages"`
}

// PageCount número de páginas.
func (d *Document) PageCount() int { return len(d.Pages) }
