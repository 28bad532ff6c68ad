package bookingdb

import (
	"fmt"

	"github.com/veltrip/platform/business/domain/bookingbus"
	"github.com/veltrip/platform/business/sdk/order"
)

var orderByFields = map[string]string{
	bookingbus.OrderByID:        "booking_id",
	bookingbus.OrderByStatus:    "status",
	bookingbus.OrderByFare:      "estimated_fare",
	bookingbus.OrderByCreatedAt: "created_at",
}

func orderByClause(orderBy order.By) (string, error) {
	by, exists := orderByFields[orderBy.Field]
	if !exists {
		return "", fmt.Errorf("field %q does not exist", orderBy.Field)
	}

	return " ORDER BY " + by + " " + orderBy.Direction, nil
}
