package paymentapp

import (
	"github.com/veltrip/platform/business/domain/paymentbus"
)

var orderByFields = map[string]string{
	"payment_id": paymentbus.OrderByID,
	"amount":     paymentbus.OrderByAmount,
	"status":     paymentbus.OrderByStatus,
	"created_at": paymentbus.OrderByCreatedAt,
}
