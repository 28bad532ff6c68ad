package query_test

import (
	"encoding/json"
	"testing"

	"github.com/veltrip/platform/app/sdk/query"
	"github.com/veltrip/platform/business/sdk/page"
	"github.com/veltrip/platform/business/sdk/web"
)

var _ web.Encoder = query.Result[int]{}

func Test_Result_Encode(t *testing.T) {
	pg, err := page.Parse("2", "10")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	data, contentType, err := query.NewResult([]string{"a", "b"}, 12, pg).Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if contentType != "application/json" {
		t.Errorf("content type = %q, want application/json", contentType)
	}

	var got struct {
		Items       []string `json:"items"`
		Total       int      `json:"total"`
		Page        int      `json:"page"`
		RowsPerPage int      `json:"rowsPerPage"`
	}
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if len(got.Items) != 2 || got.Total != 12 || got.Page != 2 || got.RowsPerPage != 10 {
		t.Errorf("decoded result = %+v, want 2 items total 12 page 2 rows 10", got)
	}
}
