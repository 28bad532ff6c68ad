package bookingapp

import (
	"github.com/veltrip/platform/business/domain/bookingbus"
)

var orderByFields = map[string]string{
	"booking_id": bookingbus.OrderByID,
	"status":     bookingbus.OrderByStatus,
	"fare":       bookingbus.OrderByFare,
	"created_at": bookingbus.OrderByCreatedAt,
}
