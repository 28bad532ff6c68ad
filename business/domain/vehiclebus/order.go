package vehiclebus

import "github.com/veltrip/platform/business/sdk/order"

var DefaultOrderBy = order.NewBy(OrderByID, order.ASC)

const (
	OrderByID        = "a"
	OrderByPlate     = "b"
	OrderByType      = "c"
	OrderByCreatedAt = "d"
)
