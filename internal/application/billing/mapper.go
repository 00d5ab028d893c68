package billing

import (
	"encoding/base64"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/h2non/filetype"
	"github.com/samber/lo"

	"github.com/firmaflow/ledger/internal/application/dto"
	"github.com/firmaflow/ledger/internal/domain"
	"github.com/firmaflow/ledger/internal/domain/entity"
)

// maxLogoBytes tamaño máximo del logo decodificado.
const maxLogoBytes = 2 << 20

var dateLayouts = []string{"2006-01-02", time.RFC3339}

// toCompany convierte el DTO en entidad y decodifica el logo.
func toCompany(in dto.CompanyInput) (entity.Company, error) {
	c := entity.Company{
		Name:    strings.TrimSpace(in.Name),
		Address: in.Address,
		City:    in.City,
		State:   in.State,
		Phone:   in.Phone,
		Email:   in.Email,
	}
	if in.Bank != nil {
		c.Bank = &entity.BankDetails{
			BankName:      in.Bank.BankName,
			AccountName:   in.Bank.AccountName,
			AccountNumber: in.Bank.AccountNumber,
		}
	}
	if strings.TrimSpace(in.Logo) != "" {
		data, format, err := decodeLogo(in.Logo)
		if err != nil {
			return entity.Company{}, err
		}
		c.Logo, c.LogoFormat = data, format
	}
	return c, nil
}

// decodeLogo acepta base64 plano o data URL y detecta el formato por los
// bytes mágicos; solo PNG y JPEG.
func decodeLogo(raw string) ([]byte, string, error) {
	payload := strings.TrimSpace(raw)
	if strings.HasPrefix(payload, "data:") {
		_, after, ok := strings.Cut(payload, ",")
		if !ok {
			return nil, "", domain.InvalidInputf("logo: data URL sin contenido")
		}
		payload = after
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", errors.Mark(errors.Wrap(err, "logo: base64 inválido"), domain.ErrInvalidInput)
	}
	if len(data) > maxLogoBytes {
		return nil, "", domain.InvalidInputf("logo: supera %d bytes", maxLogoBytes)
	}
	kind, err := filetype.Match(data)
	if err != nil {
		return nil, "", errors.Mark(errors.Wrap(err, "logo: formato no reconocido"), domain.ErrInvalidInput)
	}
	switch kind.Extension {
	case "png":
		return data, "png", nil
	case "jpg", "jpeg":
		return data, "jpg", nil
	default:
		return nil, "", domain.InvalidInputf("logo: formato %q no soportado (solo PNG o JPEG)", kind.Extension)
	}
}

// toInvoice convierte el DTO en entidad. Las fechas vacías quedan en cero.
func toInvoice(in dto.InvoiceInput) (entity.Invoice, error) {
	issue, err := parseDate(in.IssueDate)
	if err != nil {
		return entity.Invoice{}, errors.Mark(errors.Wrap(err, "issue_date"), domain.ErrInvalidInput)
	}
	due, err := parseDate(in.DueDate)
	if err != nil {
		return entity.Invoice{}, errors.Mark(errors.Wrap(err, "due_date"), domain.ErrInvalidInput)
	}

	items := lo.Map(in.Items, func(it dto.LineItemInput, _ int) entity.LineItem {
		return entity.LineItem{
			Description: it.Description,
			Quantity:    it.Quantity,
			Rate:        it.Rate,
			Amount:      it.Amount,
		}
	})

	return entity.Invoice{
		Number:    strings.TrimSpace(in.Number),
		IssueDate: issue,
		DueDate:   due,
		Currency:  strings.ToUpper(strings.TrimSpace(in.Currency)),
		Customer: entity.InvoiceCustomer{
			Name:    in.Customer.Name,
			Address: in.Customer.Address,
			City:    in.Customer.City,
			Phone:   in.Customer.Phone,
			Email:   in.Customer.Email,
		},
		Items:    items,
		Subtotal: in.Subtotal,
		Discount: in.Discount,
		Tax:      in.Tax,
		Shipping: in.Shipping,
		Total:    in.Total,
		Notes:    in.Notes,
	}, nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.Newf("fecha %q inválida (use AAAA-MM-DD)", s)
}

func toRenderRecord(d *entity.RenderedDocument) dto.RenderRecordResponse {
	return dto.RenderRecordResponse{
		ID:            d.ID,
		CompanyName:   d.CompanyName,
		InvoiceNumber: d.InvoiceNumber,
		Mode:          d.Mode,
		Template:      d.Template,
		Pages:         d.Pages,
		Currency:      d.Currency,
		Total:         d.Total,
		Checksum:      d.Checksum,
		SizeBytes:     d.SizeBytes,
		CreatedAt:     d.CreatedAt,
	}
}
