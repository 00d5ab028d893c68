package entity

// Company representa la empresa emisora tal como se imprime en la factura.
// Los campos vacíos no se muestran en el documento.
type Company struct {
	Name    string
	Address string
	City    string
	State   string
	Phone   string
	Email   string

	// Logo en bytes crudos (PNG/JPEG). LogoFormat es la extensión detectada ("png", "jpg").
	Logo       []byte
	LogoFormat string

	Bank *BankDetails // nil = sin datos bancarios
}

// HasLogo indica si hay un logo utilizable.
func (c Company) HasLogo() bool {
	return len(c.Logo) > 0 && c.LogoFormat != ""
}

// BankDetails datos bancarios usados por la sección de pago.
type BankDetails struct {
	BankName      string
	AccountName   string
	AccountNumber string
}
