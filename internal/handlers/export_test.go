package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestCustomerExportProducesWorkbook(t *testing.T) {
	backend := newFakeBackend()
	registerStores(backend)
	backend.mux.HandleFunc("GET /api/customers", jsonResponse(
		`[{"id":"c1","full_name":"Asha Rao","phone_number":"9876543210","email":"asha@example.com","is_active":true,"store_id":"s1","address":{"city":"Bengaluru"}}]`))
	h := NewCustomerHandler(newTestClient(t, backend))

	w := httptest.NewRecorder()
	h.Export(w, httptest.NewRequest(http.MethodGet, "/admin/dashboard/customer/export", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Fatalf("unexpected content type %q", ct)
	}

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows("Customers")
	if err != nil {
		t.Fatalf("read sheet: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header plus one row, got %d", len(rows))
	}
	if rows[1][0] != "Asha Rao" || rows[1][1] != "9876543210" {
		t.Fatalf("unexpected first data row: %v", rows[1])
	}
	if rows[1][4] != "AutoCare24 - Indiranagar" {
		t.Fatalf("expected store name in export, got %q", rows[1][4])
	}
}
