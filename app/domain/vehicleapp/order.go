package vehicleapp

import (
	"github.com/veltrip/platform/business/domain/vehiclebus"
)

var orderByFields = map[string]string{
	"vehicle_id": vehiclebus.OrderByID,
	"plate":      vehiclebus.OrderByPlate,
	"type":       vehiclebus.OrderByType,
	"created_at": vehiclebus.OrderByCreatedAt,
}
