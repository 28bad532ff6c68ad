package paymentdb

import (
	"fmt"

	"github.com/veltrip/platform/business/domain/paymentbus"
	"github.com/veltrip/platform/business/sdk/order"
)

var orderByFields = map[string]string{
	paymentbus.OrderByID:        "payment_id",
	paymentbus.OrderByAmount:    "amount",
	paymentbus.OrderByStatus:    "status",
	paymentbus.OrderByCreatedAt: "created_at",
}

func orderByClause(orderBy order.By) (string, error) {
	by, exists := orderByFields[orderBy.Field]
	if !exists {
		return "", fmt.Errorf("field %q does not exist", orderBy.Field)
	}

	return " ORDER BY " + by + " " + orderBy.Direction, nil
}
