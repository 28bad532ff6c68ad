package driverbus

import "github.com/veltrip/platform/business/sdk/order"

var DefaultOrderBy = order.NewBy(OrderByID, order.ASC)

const (
	OrderByID        = "a"
	OrderByLicense   = "b"
	OrderByOnline    = "c"
	OrderByApproved  = "d"
	OrderByCreatedAt = "e"
)
