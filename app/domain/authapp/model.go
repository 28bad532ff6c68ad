package authapp

import (
	"encoding/json"
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/veltrip/platform/app/sdk/errs"
	"github.com/veltrip/platform/business/domain/companybus"
	"github.com/veltrip/platform/business/domain/userbus"
	"github.com/veltrip/platform/business/types/name"
	"github.com/veltrip/platform/business/types/password"
	"github.com/veltrip/platform/business/types/phone"
	"github.com/veltrip/platform/business/types/role"
)

type Token struct {
	Token string `json:"token"`
}

// Encode implements the web.Encoder interface.
func (t Token) Encode() ([]byte, string, error) {
	data, err := json.Marshal(t)
	return data, "application/json", err
}

func toAppToken(token string) Token {
	return Token{
		Token: token,
	}
}

type Login struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Decode implements the web.Decoder interface.
func (app *Login) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app Login) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

// =============================================================================

// Register defines the data needed for customer self registration.
type Register struct {
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"phone"`
	Password        string `json:"password" validate:"required"`
	PasswordConfirm string `json:"passwordConfirm" validate:"eqfield=Password"`
}

// Decode implements the web.Decoder interface.
func (app *Register) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app Register) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusNewCustomer(app Register, companyID uuid.UUID) (userbus.NewUser, error) {
	addr, err := mail.ParseAddress(app.Email)
	if err != nil {
		return userbus.NewUser{}, fmt.Errorf("parse email: %w", err)
	}

	nme, err := name.Parse(app.Name)
	if err != nil {
		return userbus.NewUser{}, fmt.Errorf("parse name: %w", err)
	}

	ph, err := phone.ParseNull(app.Phone)
	if err != nil {
		return userbus.NewUser{}, fmt.Errorf("parse phone: %w", err)
	}

	pass, err := password.Parse(app.Password)
	if err != nil {
		return userbus.NewUser{}, fmt.Errorf("parse password: %w", err)
	}

	bus := userbus.NewUser{
		CompanyID: companyID,
		Name:      nme,
		Email:     *addr,
		Phone:     ph,
		Role:      role.Customer,
		Password:  pass,
	}

	return bus, nil
}

// Registered is the response for a customer registration.
type Registered struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	CompanyID   string `json:"companyId"`
	Token       string `json:"token"`
	DateCreated string `json:"dateCreated"`
}

// Encode implements the web.Encoder interface.
func (r Registered) Encode() ([]byte, string, error) {
	data, err := json.Marshal(r)
	return data, "application/json", err
}

func toAppRegistered(usr userbus.User, token string) Registered {
	return Registered{
		ID:          usr.ID.String(),
		Name:        usr.Name.String(),
		Email:       usr.Email.Address,
		Role:        usr.Role.String(),
		CompanyID:   usr.CompanyID.String(),
		Token:       token,
		DateCreated: usr.CreatedAt.Format(time.RFC3339),
	}
}

// =============================================================================

// RegisterCompany defines the data needed to onboard a company and its
// first admin user.
type RegisterCompany struct {
	CompanyName     string `json:"companyName" validate:"required"`
	Domain          string `json:"domain" validate:"required,fqdn"`
	Subdomain       string `json:"subdomain" validate:"required,hostname"`
	CompanyPhone    string `json:"companyPhone"`
	AdminName       string `json:"adminName" validate:"required"`
	AdminEmail      string `json:"adminEmail" validate:"required,email"`
	AdminPhone      string `json:"adminPhone"`
	Password        string `json:"password" validate:"required"`
	PasswordConfirm string `json:"passwordConfirm" validate:"eqfield=Password"`
}

// Decode implements the web.Decoder interface.
func (app *RegisterCompany) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app RegisterCompany) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusNewCompany(app RegisterCompany) (companybus.NewCompany, error) {
	nme, err := name.Parse(app.CompanyName)
	if err != nil {
		return companybus.NewCompany{}, fmt.Errorf("parse company name: %w", err)
	}

	ph, err := phone.ParseNull(app.CompanyPhone)
	if err != nil {
		return companybus.NewCompany{}, fmt.Errorf("parse company phone: %w", err)
	}

	bus := companybus.NewCompany{
		Name:      nme,
		Domain:    app.Domain,
		Subdomain: app.Subdomain,
		Phone:     ph,
	}

	return bus, nil
}

func toBusNewCompanyAdmin(app RegisterCompany, companyID uuid.UUID) (userbus.NewUser, error) {
	addr, err := mail.ParseAddress(app.AdminEmail)
	if err != nil {
		return userbus.NewUser{}, fmt.Errorf("parse admin email: %w", err)
	}

	nme, err := name.Parse(app.AdminName)
	if err != nil {
		return userbus.NewUser{}, fmt.Errorf("parse admin name: %w", err)
	}

	ph, err := phone.ParseNull(app.AdminPhone)
	if err != nil {
		return userbus.NewUser{}, fmt.Errorf("parse admin phone: %w", err)
	}

	pass, err := password.Parse(app.Password)
	if err != nil {
		return userbus.NewUser{}, fmt.Errorf("parse password: %w", err)
	}

	bus := userbus.NewUser{
		CompanyID: companyID,
		Name:      nme,
		Email:     *addr,
		Phone:     ph,
		Role:      role.Company,
		Password:  pass,
	}

	return bus, nil
}

// RegisteredCompany is the response for company onboarding.
type RegisteredCompany struct {
	CompanyID   string `json:"companyId"`
	CompanyName string `json:"companyName"`
	Domain      string `json:"domain"`
	Subdomain   string `json:"subdomain"`
	AdminID     string `json:"adminId"`
	AdminEmail  string `json:"adminEmail"`
	Token       string `json:"token"`
	DateCreated string `json:"dateCreated"`
}

// Encode implements the web.Encoder interface.
func (r RegisteredCompany) Encode() ([]byte, string, error) {
	data, err := json.Marshal(r)
	return data, "application/json", err
}

func toAppRegisteredCompany(cmp companybus.Company, usr userbus.User, token string) RegisteredCompany {
	return RegisteredCompany{
		CompanyID:   cmp.ID.String(),
		CompanyName: cmp.Name.String(),
		Domain:      cmp.Domain,
		Subdomain:   cmp.Subdomain,
		AdminID:     usr.ID.String(),
		AdminEmail:  usr.Email.Address,
		Token:       token,
		DateCreated: cmp.CreatedAt.Format(time.RFC3339),
	}
}
