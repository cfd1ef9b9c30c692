package api

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRespondDataEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondData(rec, 200, map[string]int{"count": 3})

	if rec.Code != 200 {
		t.Errorf("status = %d", rec.Code)
	}
	var resp Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if !resp.Success {
		t.Error("success = false")
	}
	if resp.Error != "" {
		t.Errorf("error = %q, want empty", resp.Error)
	}
}

func TestRespondErrorHidesDetail(t *testing.T) {
	SetExposeErrors(false)
	defer SetExposeErrors(true)

	rec := httptest.NewRecorder()
	RespondError(rec, 500, "Failed to aggregate alerts", errInternal("pg: connection refused"))

	var resp Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if resp.Success {
		t.Error("success = true on error")
	}
	if strings.Contains(resp.Error, "connection refused") {
		t.Errorf("internal detail leaked: %q", resp.Error)
	}
}

func TestRespondErrorShowsDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondError(rec, 500, "Failed to aggregate alerts", errInternal("pg: connection refused"))

	var resp Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if !strings.Contains(resp.Error, "connection refused") {
		t.Errorf("detail missing outside production: %q", resp.Error)
	}
}

type errInternal string

func (e errInternal) Error() string {
	return string(e)
}

func TestDecodeJSONUnknownField(t *testing.T) {
	req := httptest.NewRequest("POST", "/alerts/resolve", strings.NewReader(`{"alert_id":"x","bogus":1}`))
	var dst ResolveAlertRequest
	err := DecodeJSON(req, &dst)
	if err == nil || !strings.Contains(err.Error(), "unknown field") {
		t.Errorf("expected unknown field error, got %v", err)
	}
}

func TestDecodeJSONMalformed(t *testing.T) {
	req := httptest.NewRequest("POST", "/alerts/resolve", strings.NewReader(`{`))
	var dst ResolveAlertRequest
	if err := DecodeJSON(req, &dst); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

func TestValidateResolveRequest(t *testing.T) {
	errs := Validate(ResolveAlertRequest{AlertID: "lowstock_1", ResolvedBy: "alice"})
	if errs != nil {
		t.Errorf("unexpected errors: %v", errs)
	}

	errs = Validate(ResolveAlertRequest{ResolvedBy: "alice"})
	if errs["alert_id"] == "" {
		t.Errorf("missing alert_id error: %v", errs)
	}
}

func TestValidateUsesJSONFieldNames(t *testing.T) {
	errs := Validate(CreateBatchRequest{})
	if _, ok := errs["product_id"]; !ok {
		t.Errorf("expected product_id key, got %v", errs)
	}

	errs = Validate(CreateProductRequest{})
	if _, ok := errs["sku"]; !ok {
		t.Errorf("expected sku key, got %v", errs)
	}
}

func TestParsePagination(t *testing.T) {
	req := httptest.NewRequest("GET", "/inventory/products", nil)
	p := ParsePagination(req)
	if p.Page != 1 || p.PerPage != 50 {
		t.Errorf("defaults wrong: %+v", p)
	}

	req = httptest.NewRequest("GET", "/inventory/products?page=3&per_page=500", nil)
	p = ParsePagination(req)
	if p.Page != 3 {
		t.Errorf("page = %d", p.Page)
	}
	if p.PerPage != 200 {
		t.Errorf("per_page = %d, want capped at 200", p.PerPage)
	}
	if p.Offset() != 400 {
		t.Errorf("offset = %d", p.Offset())
	}
}

func TestTotalPages(t *testing.T) {
	p := PaginationParams{Page: 1, PerPage: 50}
	if got := p.TotalPages(101); got != 3 {
		t.Errorf("TotalPages(101) = %d, want 3", got)
	}
	if got := p.TotalPages(0); got != 0 {
		t.Errorf("TotalPages(0) = %d, want 0", got)
	}
}
