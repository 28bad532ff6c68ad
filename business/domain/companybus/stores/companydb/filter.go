package companydb

import (
	"bytes"
	"strings"

	"github.com/veltrip/platform/business/domain/companybus"
)

func applyFilter(filter companybus.QueryFilter, data map[string]any, buf *bytes.Buffer) {
	var wc []string

	if filter.ID != nil {
		data["company_id"] = *filter.ID
		wc = append(wc, "company_id = :company_id")
	}

	if filter.Name != nil {
		data["name"] = "%" + filter.Name.String() + "%"
		wc = append(wc, "name LIKE :name")
	}

	if filter.Domain != nil {
		data["domain"] = *filter.Domain
		wc = append(wc, "domain = :domain")
	}

	if filter.Enabled != nil {
		data["enabled"] = *filter.Enabled
		wc = append(wc, "enabled = :enabled")
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
