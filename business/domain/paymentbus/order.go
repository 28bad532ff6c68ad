package paymentbus

import "github.com/veltrip/platform/business/sdk/order"

var DefaultOrderBy = order.NewBy(OrderByCreatedAt, order.DESC)

const (
	OrderByID        = "a"
	OrderByAmount    = "b"
	OrderByStatus    = "c"
	OrderByCreatedAt = "d"
)
