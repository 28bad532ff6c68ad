package companyapp

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/veltrip/platform/app/sdk/errs"
	"github.com/veltrip/platform/business/domain/companybus"
	"github.com/veltrip/platform/business/types/name"
	"github.com/veltrip/platform/business/types/phone"
)

// Company represents information about an individual company.
type Company struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Domain      string `json:"domain"`
	Subdomain   string `json:"subdomain"`
	Phone       string `json:"phone"`
	Enabled     bool   `json:"enabled"`
	DateCreated string `json:"dateCreated"`
	DateUpdated string `json:"dateUpdated"`
}

// Encode implements the web.Encoder interface.
func (c Company) Encode() ([]byte, string, error) {
	data, err := json.Marshal(c)
	return data, "application/json", err
}

func toAppCompany(bus companybus.Company) Company {
	return Company{
		ID:          bus.ID.String(),
		Name:        bus.Name.String(),
		Domain:      bus.Domain,
		Subdomain:   bus.Subdomain,
		Phone:       bus.Phone.String(),
		Enabled:     bus.Enabled,
		DateCreated: bus.CreatedAt.Format(time.RFC3339),
		DateUpdated: bus.UpdatedAt.Format(time.RFC3339),
	}
}

func toAppCompanies(cmps []companybus.Company) []Company {
	app := make([]Company, len(cmps))
	for i, cmp := range cmps {
		app[i] = toAppCompany(cmp)
	}
	return app
}

// =============================================================================

// NewCompany defines the data needed to add a new company.
type NewCompany struct {
	Name      string `json:"name" validate:"required"`
	Domain    string `json:"domain" validate:"required,fqdn"`
	Subdomain string `json:"subdomain" validate:"required,hostname"`
	Phone     string `json:"phone"`
}

// Decode implements the web.Decoder interface.
func (app *NewCompany) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app NewCompany) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusNewCompany(app NewCompany) (companybus.NewCompany, error) {
	nme, err := name.Parse(app.Name)
	if err != nil {
		return companybus.NewCompany{}, fmt.Errorf("parse name: %w", err)
	}

	ph, err := phone.ParseNull(app.Phone)
	if err != nil {
		return companybus.NewCompany{}, fmt.Errorf("parse phone: %w", err)
	}

	bus := companybus.NewCompany{
		Name:      nme,
		Domain:    app.Domain,
		Subdomain: app.Subdomain,
		Phone:     ph,
	}

	return bus, nil
}

// =============================================================================

// UpdateCompany defines the data needed to update a company.
type UpdateCompany struct {
	Name      *string `json:"name"`
	Domain    *string `json:"domain" validate:"omitempty,fqdn"`
	Subdomain *string `json:"subdomain" validate:"omitempty,hostname"`
	Phone     *string `json:"phone"`
	Enabled   *bool   `json:"enabled"`
}

// Decode implements the web.Decoder interface.
func (app *UpdateCompany) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app UpdateCompany) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusUpdateCompany(app UpdateCompany) (companybus.UpdateCompany, error) {
	var nme *name.Name
	if app.Name != nil {
		nm, err := name.Parse(*app.Name)
		if err != nil {
			return companybus.UpdateCompany{}, fmt.Errorf("parse name: %w", err)
		}
		nme = &nm
	}

	var ph *phone.Null
	if app.Phone != nil {
		p, err := phone.ParseNull(*app.Phone)
		if err != nil {
			return companybus.UpdateCompany{}, fmt.Errorf("parse phone: %w", err)
		}
		ph = &p
	}

	bus := companybus.UpdateCompany{
		Name:      nme,
		Domain:    app.Domain,
		Subdomain: app.Subdomain,
		Phone:     ph,
		Enabled:   app.Enabled,
	}

	return bus, nil
}
