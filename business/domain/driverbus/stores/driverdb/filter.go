package driverdb

import (
	"bytes"
	"strings"

	"github.com/veltrip/platform/business/domain/driverbus"
)

func applyFilter(filter driverbus.QueryFilter, data map[string]any, buf *bytes.Buffer) {
	var wc []string

	if filter.ID != nil {
		data["driver_id"] = *filter.ID
		wc = append(wc, "driver_id = :driver_id")
	}

	if filter.UserID != nil {
		data["user_id"] = *filter.UserID
		wc = append(wc, "user_id = :user_id")
	}

	if filter.CompanyID != nil {
		data["company_id"] = *filter.CompanyID
		wc = append(wc, "company_id = :company_id")
	}

	if filter.Online != nil {
		data["online"] = *filter.Online
		wc = append(wc, "online = :online")
	}

	if filter.Approved != nil {
		data["approved"] = *filter.Approved
		wc = append(wc, "approved = :approved")
	}

	if len(wc) > 0 {
		buf.WriteString(" WHERE ")
		buf.WriteString(strings.Join(wc, " AND "))
	}
}
