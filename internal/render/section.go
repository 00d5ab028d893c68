package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Kind tipo de sección de la factura.
type Kind string

const (
	KindHeader         Kind = "header"
	KindCompanyInfo    Kind = "companyInfo"
	KindCustomerInfo   Kind = "customerInfo"
	KindInvoiceDetails Kind = "invoiceDetails"
	KindItemsTable     Kind = "itemsTable"
	KindTotals         Kind = "totals"
	KindPaymentInfo    Kind = "paymentInfo"
	KindCustomText     Kind = "customText"
	KindDivider        Kind = "divider"
)

// Section es una sección declarativa. El conjunto de implementaciones es
// cerrado: solo los tipos de este paquete la satisfacen.
type Section interface {
	Kind() Kind
	Common() Props
	section()
}

// HeaderSection título, logo opcional y número de factura.
type HeaderSection struct {
	Props
	ShowLogo Flag  `json:"showLogo"`
	Title    Token `json:"title"`
}

// CompanyInfoSection datos de la empresa emisora.
type CompanyInfoSection struct {
	Props
	Title Token `json:"title"`
}

// CustomerInfoSection bloque "Bill To".
type CustomerInfoSection struct {
	Props
	Title Token `json:"title"`
}

// InvoiceDetailsSection filas clave/valor de número y fechas.
type InvoiceDetailsSection struct {
	Props
}

// ItemsTableSection tabla de líneas de detalle.
type ItemsTableSection struct {
	Props
	HeaderColor Token `json:"headerColor"`
	Striped     Flag  `json:"striped"`
}

// TotalsSection subtotal, descuento, impuesto, envío y total.
type TotalsSection struct {
	Props
}

// PaymentInfoSection datos bancarios.
type PaymentInfoSection struct {
	Props
	Title Token `json:"title"`
}

// CustomTextSection texto libre con estilo.
type CustomTextSection struct {
	Props
	Text      string `json:"text"`
	Italic    Flag   `json:"italic"`
	Underline Flag   `json:"underline"`
}

// DividerSection línea horizontal; el color de la línea es Props.Color.
type DividerSection struct {
	Props
	Thickness Number `json:"thickness"`
	Margin    Number `json:"margin"`
}

func (HeaderSection) Kind() Kind         { return KindHeader }
func (CompanyInfoSection) Kind() Kind    { return KindCompanyInfo }
func (CustomerInfoSection) Kind() Kind   { return KindCustomerInfo }
func (InvoiceDetailsSection) Kind() Kind { return KindInvoiceDetails }
func (ItemsTableSection) Kind() Kind     { return KindItemsTable }
func (TotalsSection) Kind() Kind         { return KindTotals }
func (PaymentInfoSection) Kind() Kind    { return KindPaymentInfo }
func (CustomTextSection) Kind() Kind     { return KindCustomText }
func (DividerSection) Kind() Kind        { return KindDivider }

func (s HeaderSection) Common() Props         { return s.Props }
func (s CompanyInfoSection) Common() Props    { return s.Props }
func (s CustomerInfoSection) Common() Props   { return s.Props }
func (s InvoiceDetailsSection) Common() Props { return s.Props }
func (s ItemsTableSection) Common() Props     { return s.Props }
func (s TotalsSection) Common() Props         { return s.Props }
func (s PaymentInfoSection) Common() Props    { return s.Props }
func (s CustomTextSection) Common() Props     { return s.Props }
func (s DividerSection) Common() Props        { return s.Props }

func (HeaderSection) section()         {}
func (CompanyInfoSection) section()    {}
func (CustomerInfoSection) section()   {}
func (InvoiceDetailsSection) section() {}
func (ItemsTableSection) section()     {}
func (TotalsSection) section()         {}
func (PaymentInfoSection) section()    {}
func (CustomTextSection) section()     {}
func (DividerSection) section()        {}

// TemplateDescriptor lista ordenada de secciones de un diseño personalizado.
// Es inmutable una vez entregado al compositor.
type TemplateDescriptor struct {
	Sections []Section
}

// Len número de secciones.
func (d TemplateDescriptor) Len() int { return len(d.Sections) }

// ── Parseo ────────────────────────────────────────────────────────────────────

// Warning describe una sección descartada o degradada durante el parseo.
type Warning struct {
	Index  int    `json:"index"`
	Kind   string `json:"kind"`
	Reason string `json:"reason"`
}

func (w Warning) String() string {
	return fmt.Sprintf("section %d (%q): %s", w.Index, w.Kind, w.Reason)
}

// Motivos de Warning.
const (
	ReasonMalformed    = "malformed section"
	ReasonUnknownKind  = "unknown section kind"
	ReasonInvalidProps = "invalid props, defaults applied"
)

type rawSection struct {
	Kind  string          `json:"kind"`
	Type  string          `json:"type"`
	Props json.RawMessage `json:"props"`
}

func (r rawSection) kind() string {
	if r.Kind != "" {
		return r.Kind
	}
	return r.Type
}

type sectionDecoder func(json.RawMessage) (Section, error)

// decoders tabla cerrada de tipos conocidos; la clave va en minúsculas.
var decoders = map[string]sectionDecoder{
	"header":         decode[HeaderSection],
	"companyinfo":    decode[CompanyInfoSection],
	"customerinfo":   decode[CustomerInfoSection],
	"invoicedetails": decode[InvoiceDetailsSection],
	"itemstable":     decode[ItemsTableSection],
	"totals":         decode[TotalsSection],
	"paymentinfo":    decode[PaymentInfoSection],
	"customtext":     decode[CustomTextSection],
	"divider":        decode[DividerSection],
}

func decode[T Section](raw json.RawMessage) (Section, error) {
	var s T
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return s, nil
	}
	if err := json.Unmarshal(raw, &s); err != nil {
		var zero T
		return zero, err
	}
	return s, nil
}

// IsKnownKind indica si name corresponde a un tipo de sección soportado.
func IsKnownKind(name string) bool {
	_, ok := decoders[normalizeKind(name)]
	return ok
}

func normalizeKind(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, "_", "")
	return strings.ReplaceAll(name, "-", "")
}

// ParseDescriptor convierte el JSON del editor de plantillas en un
// TemplateDescriptor. Acepta un arreglo de secciones o un objeto
// {"sections": [...]}. Las secciones de tipo desconocido se descartan y se
// reportan como Warning; props con forma inválida degradan a los valores por
// defecto. Solo devuelve error si data no tiene ninguna de las dos formas.
func ParseDescriptor(data []byte) (TemplateDescriptor, []Warning, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return TemplateDescriptor{}, nil, nil
	}

	var elems []json.RawMessage
	if data[0] == '{' {
		var wrapper struct {
			Sections []json.RawMessage `json:"sections"`
		}
		if err := json.Unmarshal(data, &wrapper); err != nil {
			return TemplateDescriptor{}, nil, fmt.Errorf("render: parse descriptor: %w", err)
		}
		elems = wrapper.Sections
	} else if err := json.Unmarshal(data, &elems); err != nil {
		return TemplateDescriptor{}, nil, fmt.Errorf("render: parse descriptor: %w", err)
	}

	var (
		desc     TemplateDescriptor
		warnings []Warning
	)
	for i, elem := range elems {
		var r rawSection
		if err := json.Unmarshal(elem, &r); err != nil {
			warnings = append(warnings, Warning{Index: i, Reason: ReasonMalformed})
			continue
		}
		name := r.kind()
		dec, ok := decoders[normalizeKind(name)]
		if !ok {
			warnings = append(warnings, Warning{Index: i, Kind: name, Reason: ReasonUnknownKind})
			continue
		}
		// Sin "props" se leen los atributos del propio objeto.
		props := r.Props
		if len(bytes.TrimSpace(props)) == 0 {
			props = elem
		}
		s, err := dec(props)
		if err != nil {
			warnings = append(warnings, Warning{Index: i, Kind: name, Reason: ReasonInvalidProps})
		}
		desc.Sections = append(desc.Sections, s)
	}
	return desc, warnings, nil
}
