package bookingbus

import "github.com/veltrip/platform/business/sdk/order"

var DefaultOrderBy = order.NewBy(OrderByCreatedAt, order.DESC)

const (
	OrderByID        = "a"
	OrderByStatus    = "b"
	OrderByFare      = "c"
	OrderByCreatedAt = "d"
)
