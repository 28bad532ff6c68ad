package companydb

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/veltrip/platform/business/domain/companybus"
	"github.com/veltrip/platform/business/types/name"
	"github.com/veltrip/platform/business/types/phone"
)

type companyDB struct {
	ID        uuid.UUID      `db:"company_id"`
	Name      string         `db:"name"`
	Domain    string         `db:"domain"`
	Subdomain sql.NullString `db:"subdomain"`
	Phone     sql.NullString `db:"phone"`
	Enabled   bool           `db:"enabled"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

func toDBCompany(bus companybus.Company) companyDB {
	return companyDB{
		ID:     bus.ID,
		Name:   bus.Name.String(),
		Domain: bus.Domain,
		Subdomain: sql.NullString{
			String: bus.Subdomain,
			Valid:  bus.Subdomain != "",
		},
		Phone:     phone.ToSQLNullString(bus.Phone),
		Enabled:   bus.Enabled,
		CreatedAt: bus.CreatedAt.UTC(),
		UpdatedAt: bus.UpdatedAt.UTC(),
	}
}

func toBusCompany(db companyDB) (companybus.Company, error) {
	nme, err := name.Parse(db.Name)
	if err != nil {
		return companybus.Company{}, fmt.Errorf("parse name: %w", err)
	}

	phn, err := phone.ParseNull(db.Phone.String)
	if err != nil {
		return companybus.Company{}, fmt.Errorf("parse phone: %w", err)
	}

	bus := companybus.Company{
		ID:        db.ID,
		Name:      nme,
		Domain:    db.Domain,
		Subdomain: db.Subdomain.String,
		Phone:     phn,
		Enabled:   db.Enabled,
		CreatedAt: db.CreatedAt.In(time.Local),
		UpdatedAt: db.UpdatedAt.In(time.Local),
	}

	return bus, nil
}

func toBusCompanies(dbs []companyDB) ([]companybus.Company, error) {
	bus := make([]companybus.Company, len(dbs))

	for i, db := range dbs {
		var err error
		bus[i], err = toBusCompany(db)
		if err != nil {
			return nil, err
		}
	}

	return bus, nil
}
