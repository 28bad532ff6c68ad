// Package companybus provides business access to company (tenant) data.
package companybus

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/veltrip/platform/business/sdk/order"
	"github.com/veltrip/platform/business/sdk/page"
	"github.com/veltrip/platform/business/sdk/sqldb"
	"github.com/veltrip/platform/foundation/otel"
)

var (
	ErrNotFound     = errors.New("company not found")
	ErrUniqueDomain = errors.New("domain is not unique")
)

type Storer interface {
	NewWithTx(tx sqldb.CommitRollbacker) (Storer, error)
	Create(ctx context.Context, cmp Company) error
	Update(ctx context.Context, cmp Company) error
	Query(ctx context.Context, filter QueryFilter, orderBy order.By, page page.Page) ([]Company, error)
	Count(ctx context.Context, filter QueryFilter) (int, error)
	QueryByID(ctx context.Context, companyID uuid.UUID) (Company, error)
	QueryByDomain(ctx context.Context, domain string) (Company, error)
}

type Core struct {
	storer Storer
}

func NewCore(storer Storer) *Core {
	return &Core{
		storer: storer,
	}
}

func (c *Core) NewWithTx(tx sqldb.CommitRollbacker) (*Core, error) {
	storer, err := c.storer.NewWithTx(tx)
	if err != nil {
		return nil, err
	}

	return NewCore(storer), nil
}

func (c *Core) Create(ctx context.Context, nc NewCompany) (Company, error) {
	ctx, span := otel.AddSpan(ctx, "business.companybus.create")
	defer span.End()

	now := time.Now()

	cmp := Company{
		ID:        uuid.New(),
		Name:      nc.Name,
		Domain:    strings.ToLower(nc.Domain),
		Subdomain: strings.ToLower(nc.Subdomain),
		Phone:     nc.Phone,
		Enabled:   true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := c.storer.Create(ctx, cmp); err != nil {
		return Company{}, fmt.Errorf("create: %w", err)
	}

	return cmp, nil
}

func (c *Core) Update(ctx context.Context, cmp Company, uc UpdateCompany) (Company, error) {
	ctx, span := otel.AddSpan(ctx, "business.companybus.update")
	defer span.End()

	if uc.Name != nil {
		cmp.Name = *uc.Name
	}

	if uc.Domain != nil {
		cmp.Domain = strings.ToLower(*uc.Domain)
	}

	if uc.Subdomain != nil {
		cmp.Subdomain = strings.ToLower(*uc.Subdomain)
	}

	if uc.Phone != nil {
		cmp.Phone = *uc.Phone
	}

	if uc.Enabled != nil {
		cmp.Enabled = *uc.Enabled
	}

	cmp.UpdatedAt = time.Now()

	if err := c.storer.Update(ctx, cmp); err != nil {
		return Company{}, fmt.Errorf("update: %w", err)
	}

	return cmp, nil
}

// Delete disables the company. Company rows are never removed so tenant
// scoped records keep a valid reference.
func (c *Core) Delete(ctx context.Context, cmp Company) error {
	ctx, span := otel.AddSpan(ctx, "business.companybus.delete")
	defer span.End()

	cmp.Enabled = false
	cmp.UpdatedAt = time.Now()

	if err := c.storer.Update(ctx, cmp); err != nil {
		return fmt.Errorf("update: %w", err)
	}

	return nil
}

// Query retrieves a list of existing companies.
func (c *Core) Query(ctx context.Context, filter QueryFilter, orderBy order.By, page page.Page) ([]Company, error) {
	ctx, span := otel.AddSpan(ctx, "business.companybus.query")
	defer span.End()

	cmps, err := c.storer.Query(ctx, filter, orderBy, page)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	return cmps, nil
}

// Count returns the total number of companies.
func (c *Core) Count(ctx context.Context, filter QueryFilter) (int, error) {
	ctx, span := otel.AddSpan(ctx, "business.companybus.count")
	defer span.End()

	return c.storer.Count(ctx, filter)
}

// QueryByID finds the company by the specified ID.
func (c *Core) QueryByID(ctx context.Context, companyID uuid.UUID) (Company, error) {
	ctx, span := otel.AddSpan(ctx, "business.companybus.queryByID")
	defer span.End()

	cmp, err := c.storer.QueryByID(ctx, companyID)
	if err != nil {
		return Company{}, fmt.Errorf("query: companyID[%s]: %w", companyID, err)
	}

	return cmp, nil
}

// QueryByDomain resolves a company from a request host. The host is matched
// against the domain column first, then against the subdomain label.
func (c *Core) QueryByDomain(ctx context.Context, host string) (Company, error) {
	ctx, span := otel.AddSpan(ctx, "business.companybus.queryByDomain")
	defer span.End()

	host = strings.ToLower(host)
	if i := strings.IndexByte(host, ':'); i >= 0 {
		host = host[:i]
	}

	cmp, err := c.storer.QueryByDomain(ctx, host)
	if err != nil {
		return Company{}, fmt.Errorf("query: domain[%s]: %w", host, err)
	}

	return cmp, nil
}
