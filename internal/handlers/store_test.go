package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/autocare24/admin-portal/internal/models"
)

func registerTaskTypes(backend *fakeBackend) {
	backend.mux.HandleFunc("GET /api/task-types", jsonResponse(
		`[{"id":"t1","name":"Car Wash","slot_type":"per_hour","count":4,"allowed_in_hub":true}]`))
}

func TestStoreListFiltersBySearch(t *testing.T) {
	backend := newFakeBackend()
	backend.mux.HandleFunc("GET /api/stores", jsonResponse(`[
		{"id":"s1","name":"AutoCare24 - Indiranagar","type":"hub","alias":"AC24HUB001","city":"Bengaluru"},
		{"id":"s2","name":"AutoCare24 - Andheri","type":"garage","alias":"AC24GAR002","city":"Mumbai"}
	]`))
	h := NewStoreHandler(newTestClient(t, backend))

	w := httptest.NewRecorder()
	h.List(w, httptest.NewRequest(http.MethodGet, "/admin/dashboard/manage-store?q=indira", nil))

	body := w.Body.String()
	if !strings.Contains(body, "Indiranagar") {
		t.Fatal("expected matching store in page")
	}
	if strings.Contains(body, "Andheri") {
		t.Fatal("non-matching store should be filtered out")
	}
	// both cities still offered in the filter dropdown
	if !strings.Contains(body, "Mumbai") {
		t.Fatal("expected full city list regardless of search")
	}
}

func TestStoreCreatePrefixesNameAndSetsCapacities(t *testing.T) {
	backend := newFakeBackend()
	registerTaskTypes(backend)
	var created models.Store
	backend.mux.HandleFunc("POST /api/store-admin", func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&created); err != nil {
			t.Errorf("decode store: %v", err)
		}
		created.ID = "s9"
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(created)
	})
	var caps []models.StoreTaskCapacity
	backend.mux.HandleFunc("POST /api/store-task-capacities", func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&caps); err != nil {
			t.Errorf("decode capacities: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
	})
	h := NewStoreHandler(newTestClient(t, backend))

	w := httptest.NewRecorder()
	h.Create(w, formRequest(http.MethodPost, "/admin/dashboard/manage-store/create", url.Values{
		"type":           {"hub"},
		"name":           {"Indiranagar"},
		"alias":          {"AC24HUB001"},
		"city":           {"Bengaluru"},
		"manager_number": {"98765 43210"},
		"password":       {"pw"},
		"task_type_ids":  {"t1"},
		"cap_t1":         {"6"},
	}))

	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303 got %d: %s", w.Code, w.Body.String())
	}
	if created.Name != "AutoCare24 - Indiranagar" {
		t.Fatalf("expected prefixed name, got %q", created.Name)
	}
	if created.ManagerNumber != "9876543210" {
		t.Fatalf("expected scrubbed manager phone, got %q", created.ManagerNumber)
	}
	if len(caps) != 1 || caps[0].StoreID != "s9" || caps[0].TaskTypeID != "t1" || caps[0].Capacity != 6 {
		t.Fatalf("unexpected capacities payload: %+v", caps)
	}
}

func TestStoreCreateRollsBackOnCapacityFailure(t *testing.T) {
	backend := newFakeBackend()
	registerTaskTypes(backend)
	backend.mux.HandleFunc("POST /api/store-admin", jsonResponse(`{"id":"s9","name":"AutoCare24 - X","type":"hub"}`))
	backend.mux.HandleFunc("POST /api/store-task-capacities", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	backend.mux.HandleFunc("DELETE /api/stores/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	h := NewStoreHandler(newTestClient(t, backend))

	w := httptest.NewRecorder()
	h.Create(w, formRequest(http.MethodPost, "/admin/dashboard/manage-store/create", url.Values{
		"type":          {"hub"},
		"name":          {"X"},
		"alias":         {"AC24HUB001"},
		"task_type_ids": {"t1"},
		"cap_t1":        {"4"},
	}))

	if !backend.called("DELETE", "/api/stores/s9") {
		t.Fatal("expected compensating delete of the created store")
	}
	body := w.Body.String()
	if w.Code != http.StatusOK || !strings.Contains(body, "Failed to create store") {
		t.Fatalf("expected error rerender, got %d", w.Code)
	}
	// the rerendered form must keep the alias the user submitted
	if !strings.Contains(body, `value="AC24HUB001"`) {
		t.Fatal("expected the posted alias back on the form, not a fresh one")
	}
}

func TestGarageCreateTagsHubs(t *testing.T) {
	backend := newFakeBackend()
	registerTaskTypes(backend)
	backend.mux.HandleFunc("GET /api/stores", jsonResponse(
		`[{"id":"h1","name":"AutoCare24 - Hub","type":"hub","alias":"AC24HUB001"}]`))
	backend.mux.HandleFunc("POST /api/store-admin", jsonResponse(`{"id":"g9","name":"AutoCare24 - G","type":"garage"}`))
	backend.mux.HandleFunc("POST /api/store-task-capacities", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})
	var tags models.GarageHubTags
	backend.mux.HandleFunc("POST /api/garage-hub-tags", func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&tags); err != nil {
			t.Errorf("decode tags: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
	})
	h := NewStoreHandler(newTestClient(t, backend))

	w := httptest.NewRecorder()
	h.Create(w, formRequest(http.MethodPost, "/admin/dashboard/manage-store/create", url.Values{
		"type":          {"garage"},
		"name":          {"G"},
		"alias":         {"AC24GAR001"},
		"task_type_ids": {"t1"},
		"cap_t1":        {"2"},
		"hub_ids":       {"h1"},
	}))

	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303 got %d: %s", w.Code, w.Body.String())
	}
	if tags.GarageID != "g9" || len(tags.HubIDs) != 1 || tags.HubIDs[0] != "h1" {
		t.Fatalf("unexpected hub tags payload: %+v", tags)
	}
}

func TestStoreCreateRejectsEmptyName(t *testing.T) {
	backend := newFakeBackend()
	registerTaskTypes(backend)
	h := NewStoreHandler(newTestClient(t, backend))

	w := httptest.NewRecorder()
	h.Create(w, formRequest(http.MethodPost, "/admin/dashboard/manage-store/create", url.Values{
		"type": {"hub"},
		"name": {"   "},
	}))

	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Store name cannot be empty") {
		t.Fatalf("expected empty-name rerender, got %d", w.Code)
	}
	if backend.called("POST", "/api/store-admin") {
		t.Fatal("empty name must not reach the API")
	}
}

func TestStoreUpdateKeepsAliasImmutable(t *testing.T) {
	backend := newFakeBackend()
	registerTaskTypes(backend)
	backend.mux.HandleFunc("GET /api/stores/{id}", jsonResponse(
		`{"id":"s1","name":"AutoCare24 - Old","type":"hub","alias":"AC24ORIG01","city":"Bengaluru"}`))
	var updated models.Store
	backend.mux.HandleFunc("PUT /api/stores/{id}", func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&updated); err != nil {
			t.Errorf("decode store: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	})
	backend.mux.HandleFunc("PUT /api/store-task-capacities", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	h := NewStoreHandler(newTestClient(t, backend))

	r := formRequest(http.MethodPost, "/admin/dashboard/manage-store/s1", url.Values{
		"type":  {"hub"},
		"name":  {"New Name"},
		"alias": {"AC24HACKED"},
		"city":  {"Bengaluru"},
	})
	r.SetPathValue("id", "s1")
	w := httptest.NewRecorder()
	h.Update(w, r)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303 got %d: %s", w.Code, w.Body.String())
	}
	if updated.Alias != "AC24ORIG01" {
		t.Fatalf("alias must not change on update, got %q", updated.Alias)
	}
	if updated.Name != "AutoCare24 - New Name" {
		t.Fatalf("expected prefixed updated name, got %q", updated.Name)
	}
}
