package userdb

import (
	"database/sql"
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/veltrip/platform/business/domain/userbus"
	"github.com/veltrip/platform/business/types/name"
	"github.com/veltrip/platform/business/types/phone"
	"github.com/veltrip/platform/business/types/role"
)

type userDB struct {
	ID           uuid.UUID      `db:"user_id"`
	CompanyID    uuid.NullUUID  `db:"company_id"`
	Name         string         `db:"name"`
	Email        string         `db:"email"`
	Role         string         `db:"role"`
	PasswordHash []byte         `db:"password_hash"`
	Phone        sql.NullString `db:"phone"`
	Enabled      bool           `db:"enabled"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

func toDBUser(bus userbus.User) userDB {
	return userDB{
		ID: bus.ID,
		CompanyID: uuid.NullUUID{
			UUID:  bus.CompanyID,
			Valid: bus.CompanyID != uuid.Nil,
		},
		Name:         bus.Name.String(),
		Email:        bus.Email.Address,
		Role:         bus.Role.String(),
		PasswordHash: bus.PasswordHash,
		Phone:        phone.ToSQLNullString(bus.Phone),
		Enabled:      bus.Enabled,
		CreatedAt:    bus.CreatedAt.UTC(),
		UpdatedAt:    bus.UpdatedAt.UTC(),
	}
}

func toBusUser(db userDB) (userbus.User, error) {
	addr := mail.Address{
		Address: db.Email,
	}

	usrRole, err := role.Parse(db.Role)
	if err != nil {
		return userbus.User{}, fmt.Errorf("parse role: %w", err)
	}

	nme, err := name.Parse(db.Name)
	if err != nil {
		return userbus.User{}, fmt.Errorf("parse name: %w", err)
	}

	phn, err := phone.ParseNull(db.Phone.String)
	if err != nil {
		return userbus.User{}, fmt.Errorf("parse phone: %w", err)
	}

	bus := userbus.User{
		ID:           db.ID,
		CompanyID:    db.CompanyID.UUID,
		Name:         nme,
		Email:        addr,
		Role:         usrRole,
		PasswordHash: db.PasswordHash,
		Phone:        phn,
		Enabled:      db.Enabled,
		CreatedAt:    db.CreatedAt.In(time.Local),
		UpdatedAt:    db.UpdatedAt.In(time.Local),
	}

	return bus, nil
}

func toBusUsers(dbs []userDB) ([]userbus.User, error) {
	bus := make([]userbus.User, len(dbs))

	for i, db := range dbs {
		var err error
		bus[i], err = toBusUser(db)
		if err != nil {
			return nil, err
		}
	}

	return bus, nil
}
