package bookingdb

import (
	"bytes"
	"strings"

	"github.com/veltrip/platform/business/domain/bookingbus"
)

func applyFilter(filter bookingbus.QueryFilter, data map[string]any, buf *bytes.Buffer) {
	var wc []string

	if filter.ID != nil {
		data["booking_id"] = *filter.ID
		wc = append(wc, "booking_id = :booking_id")
	}

	if filter.CompanyID != nil {
		data["company_id"] = *filter.CompanyID
		wc = append(wc, "company_id = :company_id")
	}

	if filter.CustomerID != nil {
		data["customer_id"] = *filter.CustomerID
		wc = append(wc, "customer_id = :customer_id")
	}

	if filter.DriverID != nil {
		data["driver_id"] = *filter.DriverID
		wc = append(wc, "driver_id = :driver_id")
	}

	if filter.Status != nil {
		data["status"] = filter.Status.String()
		wc = append(wc, "status = :status")
	}

	if filter.StartCreatedAt != nil {
		data["start_created_at"] = filter.StartCreatedAt.UTC()
		wc = append(wc, "created_at >= :start_created_at")
	}

	if filter.EndCreatedAt != nil {
		data["end_created_at"] = filter.EndCreatedAt.UTC()
		wc = append(wc, "created_at <= :end_created_at")
	}

	if len(wc) > 0 {
		buf.WriteString(" WHERE ")
		buf.WriteString(strings.Join(wc, " AND "))
	}
}
