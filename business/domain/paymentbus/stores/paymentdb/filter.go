package paymentdb

import (
	"bytes"
	"strings"

	"github.com/veltrip/platform/business/domain/paymentbus"
)

func applyFilter(filter paymentbus.QueryFilter, data map[string]any, buf *bytes.Buffer) {
	var wc []string

	if filter.ID != nil {
		data["payment_id"] = *filter.ID
		wc = append(wc, "payment_id = :payment_id")
	}

	if filter.BookingID != nil {
		data["booking_id"] = *filter.BookingID
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

	if filter.Status != nil {
		data["status"] = filter.Status.String()
		wc = append(wc, "status = :status")
	}

	if len(wc) > 0 {
		buf.WriteString(" WHERE ")
		buf.WriteString(strings.Join(wc, " AND "))
	}
}
