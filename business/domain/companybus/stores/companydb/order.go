package companydb

import (
	"fmt"

	"github.com/veltrip/platform/business/domain/companybus"
	"github.com/veltrip/platform/business/sdk/order"
)

var orderByFields = map[string]string{
	companybus.OrderByID:        "company_id",
	companybus.OrderByName:      "name",
	companybus.OrderByDomain:    "domain",
	companybus.OrderByEnabled:   "enabled",
	companybus.OrderByCreatedAt: "created_at",
}

func orderByClause(orderBy order.By) (string, error) {
	by, exists := orderByFields[orderBy.Field]
	if !exists {
		return "", fmt.Errorf("field %q does not exist", orderBy.Field)
	}

	return " ORDER BY " + by + " " + orderBy.Direction, nil
}
