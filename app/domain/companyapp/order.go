package companyapp

import (
	"github.com/veltrip/platform/business/domain/companybus"
)

var orderByFields = map[string]string{
	"company_id": companybus.OrderByID,
	"name":       companybus.OrderByName,
	"domain":     companybus.OrderByDomain,
	"enabled":    companybus.OrderByEnabled,
	"created_at": companybus.OrderByCreatedAt,
}
