package driverapp

import (
	"github.com/veltrip/platform/business/domain/driverbus"
)

var orderByFields = map[string]string{
	"driver_id":  driverbus.OrderByID,
	"license":    driverbus.OrderByLicense,
	"online":     driverbus.OrderByOnline,
	"approved":   driverbus.OrderByApproved,
	"created_at": driverbus.OrderByCreatedAt,
}
