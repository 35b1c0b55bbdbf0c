package handlers

import (
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/autocare24/admin-portal/internal/apiclient"
	"github.com/autocare24/admin-portal/internal/format"
	"github.com/autocare24/admin-portal/internal/models"
	"github.com/autocare24/admin-portal/internal/validation"
	"github.com/autocare24/admin-portal/internal/view"
)

const customerPageLimit = 10

type CustomerHandler struct {
	api *apiclient.Client
}

func NewCustomerHandler(api *apiclient.Client) *CustomerHandler {
	return &CustomerHandler{api: api}
}

func pageParam(r *http.Request) int {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	return page
}

// fetchStores returns all stores plus an id->name map for list rendering.
func (h *CustomerHandler) fetchStores(r *http.Request) ([]models.Store, map[string]string) {
	var stores []models.Store
	if err := h.api.Get(r.Context(), "/api/stores", nil, &stores); err != nil {
		log.Printf("fetch stores: %v", err)
		return nil, map[string]string{}
	}
	names := make(map[string]string, len(stores))
	for _, s := range stores {
		names[s.ID] = s.Name
	}
	return stores, names
}

func activeOnly(customers []models.Customer) []models.Customer {
	out := customers[:0]
	for _, c := range customers {
		if c.IsActive {
			out = append(out, c)
		}
	}
	return out
}

// fetchPage pulls one page of customers with the given filters applied.
func (h *CustomerHandler) fetchPage(r *http.Request, page int, city, storeID string) ([]models.Customer, error) {
	q := url.Values{
		"page":  {strconv.Itoa(page)},
		"limit": {strconv.Itoa(customerPageLimit)},
	}
	if storeID != "" {
		q.Set("store_id", storeID)
	}
	if city != "" {
		q.Set("city", city)
	}
	var customers []models.Customer
	if err := h.api.Get(r.Context(), "/api/customers", q, &customers); err != nil {
		return nil, err
	}
	return activeOnly(customers), nil
}

func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	page := pageParam(r)
	city := r.URL.Query().Get("city")
	storeID := r.URL.Query().Get("store_id")

	stores, storeNames := h.fetchStores(r)

	data := map[string]any{
		"Stores":     stores,
		"StoreNames": storeNames,
		"Page":       page,
		"City":       city,
		"StoreID":    storeID,
		"HasPrev":    page > 1,
	}

	customers, err := h.fetchPage(r, page, city, storeID)
	if err != nil {
		log.Printf("fetch customers: %v", err)
		data["Error"] = "Failed to load customers"
	}
	data["Customers"] = customers

	view.Render(w, r, "customers.html", data)
}

func (h *CustomerHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	stores, _ := h.fetchStores(r)
	view.Render(w, r, "customer_create.html", map[string]any{
		"Stores": stores,
		"Form":   models.Customer{Source: models.SourceMainAdmin},
	})
}

func customerFromForm(r *http.Request) models.Customer {
	return models.Customer{
		FullName:    r.FormValue("full_name"),
		PhoneNumber: format.PhoneDigits(r.FormValue("phone_number")),
		Email:       r.FormValue("email"),
		Source:      r.FormValue("source"),
		Address: models.Address{
			Line1:   r.FormValue("address_line1"),
			City:    r.FormValue("address_city"),
			Pincode: r.FormValue("address_pincode"),
		},
		Latitude:  r.FormValue("latitude"),
		Longitude: r.FormValue("longitude"),
		StoreID:   r.FormValue("store_id"),
		IsActive:  true,
	}
}

// isDuplicate looks up existing customers by phone, then by email when one
// was entered. The lookups are filtered server-side; the full collection is
// never pulled.
func (h *CustomerHandler) isDuplicate(r *http.Request, phone, email string) (bool, error) {
	var matches []models.Customer
	if err := h.api.Get(r.Context(), "/api/customers", url.Values{"phone_number": {phone}}, &matches); err != nil {
		return false, err
	}
	for _, c := range matches {
		if c.PhoneNumber == phone {
			return true, nil
		}
	}
	if email == "" {
		return false, nil
	}
	matches = nil
	if err := h.api.Get(r.Context(), "/api/customers", url.Values{"email": {email}}, &matches); err != nil {
		return false, err
	}
	for _, c := range matches {
		if c.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	form := customerFromForm(r)

	rerender := func(data map[string]any) {
		stores, _ := h.fetchStores(r)
		data["Stores"] = stores
		data["Form"] = form
		view.Render(w, r, "customer_create.html", data)
	}

	v := make(validation.Violations)
	validation.Required("full_name", form.FullName, v)
	validation.Phone("phone_number", form.PhoneNumber, v)
	validation.Email("email", form.Email, v)
	if !v.Empty() {
		rerender(map[string]any{"Errors": v})
		return
	}

	dup, err := h.isDuplicate(r, form.PhoneNumber, form.Email)
	if err != nil {
		log.Printf("duplicate check: %v", err)
		rerender(map[string]any{"Error": "Failed to create customer"})
		return
	}
	if dup {
		rerender(map[string]any{"Error": "Customer already exists with this phone number or email."})
		return
	}

	if err := h.api.Post(r.Context(), "/api/customers", form, nil); err != nil {
		log.Printf("create customer: %v", err)
		rerender(map[string]any{"Error": "Failed to create customer"})
		return
	}

	http.Redirect(w, r, "/admin/dashboard/customer", http.StatusSeeOther)
}

// EditForm shows a customer with its vehicles and loyalty card tabs.
func (h *CustomerHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var customer models.Customer
	if err := h.api.Get(r.Context(), "/api/customers/"+id, nil, &customer); err != nil {
		log.Printf("fetch customer %s: %v", id, err)
		http.NotFound(w, r)
		return
	}

	data := map[string]any{"Customer": customer}
	h.loadCustomerTabs(r, id, data)
	view.Render(w, r, "customer_edit.html", data)
}

// loadCustomerTabs fills the vehicle and loyalty card panels of the edit
// page. A 404 on the loyalty card endpoint means the customer has none.
func (h *CustomerHandler) loadCustomerTabs(r *http.Request, id string, data map[string]any) {
	var vehicles []models.Vehicle
	if err := h.api.Get(r.Context(), "/api/customers/"+id+"/vehicles", nil, &vehicles); err != nil {
		log.Printf("fetch vehicles for %s: %v", id, err)
	}
	data["Vehicles"] = vehicles

	var card models.LoyaltyCard
	err := h.api.Get(r.Context(), "/api/customers/"+id+"/loyalty-card", nil, &card)
	switch {
	case err == nil:
		data["LoyaltyCard"] = card
	case apiclient.IsNotFound(err):
		data["NoLoyaltyCard"] = true
	default:
		log.Printf("fetch loyalty card for %s: %v", id, err)
	}
}

func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	form := customerFromForm(r)
	form.ID = id
	form.IsActive = r.FormValue("is_active") != "false"

	rerender := func(data map[string]any) {
		data["Customer"] = form
		h.loadCustomerTabs(r, id, data)
		view.Render(w, r, "customer_edit.html", data)
	}

	v := make(validation.Violations)
	validation.Required("full_name", form.FullName, v)
	validation.Phone("phone_number", form.PhoneNumber, v)
	if !v.Empty() {
		rerender(map[string]any{"Errors": v})
		return
	}

	if err := h.api.Put(r.Context(), "/api/customers/"+id, form, nil); err != nil {
		log.Printf("update customer %s: %v", id, err)
		rerender(map[string]any{"Error": "Failed to update customer"})
		return
	}

	http.Redirect(w, r, "/admin/dashboard/customer", http.StatusSeeOther)
}

// Delete removes the customer, then sends the browser back to the list,
// which re-fetches. One refresh contract for every mutation.
func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.api.Delete(r.Context(), "/api/customers/"+id); err != nil {
		log.Printf("delete customer %s: %v", id, err)
	}
	http.Redirect(w, r, "/admin/dashboard/customer", http.StatusSeeOther)
}
