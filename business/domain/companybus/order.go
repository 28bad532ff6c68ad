package companybus

import "github.com/veltrip/platform/business/sdk/order"

var DefaultOrderBy = order.NewBy(OrderByID, order.ASC)

const (
	OrderByID        = "a"
	OrderByName      = "b"
	OrderByDomain    = "c"
	OrderByEnabled   = "d"
	OrderByCreatedAt = "e"
)
