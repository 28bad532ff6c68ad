package vehicledb

import (
	"fmt"

	"github.com/veltrip/platform/business/domain/vehiclebus"
	"github.com/veltrip/platform/business/sdk/order"
)

var orderByFields = map[string]string{
	vehiclebus.OrderByID:        "vehicle_id",
	vehiclebus.OrderByPlate:     "plate",
	vehiclebus.OrderByType:      "vehicle_type",
	vehiclebus.OrderByCreatedAt: "created_at",
}

func orderByClause(orderBy order.By) (string, error) {
	by, exists := orderByFields[orderBy.Field]
	if !exists {
		return "", fmt.Errorf("field %q does not exist", orderBy.Field)
	}

	return " ORDER BY " + by + " " + orderBy.Direction, nil
}
