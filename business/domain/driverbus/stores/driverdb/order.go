package driverdb

import (
	"fmt"

	"github.com/veltrip/platform/business/domain/driverbus"
	"github.com/veltrip/platform/business/sdk/order"
)

var orderByFields = map[string]string{
	driverbus.OrderByID:        "driver_id",
	driverbus.OrderByLicense:   "license",
	driverbus.OrderByOnline:    "online",
	driverbus.OrderByApproved:  "approved",
	driverbus.OrderByCreatedAt: "created_at",
}

func orderByClause(orderBy order.By) (string, error) {
	by, exists := orderByFields[orderBy.Field]
	if !exists {
		return "", fmt.Errorf("field %q does not exist", orderBy.Field)
	}

	return " ORDER BY " + by + " " + orderBy.Direction, nil
}
