package vehicledb

import (
	"bytes"
	"strings"

	"github.com/veltrip/platform/business/domain/vehiclebus"
)

func applyFilter(filter vehiclebus.QueryFilter, data map[string]any, buf *bytes.Buffer) {
	var wc []string

	if filter.ID != nil {
		data["vehicle_id"] = *filter.ID
		wc = append(wc, "vehicle_id = :vehicle_id")
	}

	if filter.CompanyID != nil {
		data["company_id"] = *filter.CompanyID
		wc = append(wc, "company_id = :company_id")
	}

	if filter.Plate != nil {
		data["plate"] = filter.Plate.String()
		wc = append(wc, "plate = :plate")
	}

	if filter.Type != nil {
		data["vehicle_type"] = filter.Type.String()
		wc = append(wc, "vehicle_type = :vehicle_type")
	}

	if filter.Active != nil {
		data["active"] = *filter.Active
		wc = append(wc, "active = :active")
	}

	if len(wc) > 0 {
		buf.WriteString(" WHERE ")
		buf.WriteString(strings.Join(wc, " AND "))
	}
}
