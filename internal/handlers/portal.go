package handlers

import (
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/autocare24/admin-portal/internal/apiclient"
	"github.com/autocare24/admin-portal/internal/format"
	"github.com/autocare24/admin-portal/internal/models"
	"github.com/autocare24/admin-portal/internal/session"
	"github.com/autocare24/admin-portal/internal/validation"
	"github.com/autocare24/admin-portal/internal/view"
)

// PortalHandler serves the hub and garage manager pages. The two portals are
// the same app with a different role, greeting and customer source, so a
// single handler carries both.
type PortalHandler struct {
	api      *apiclient.Client
	role     string
	basePath string
	greeting string
	source   string
}

func NewStorePortalHandler(api *apiclient.Client) *PortalHandler {
	return &PortalHandler{
		api:      api,
		role:     session.RoleStore,
		basePath: "/store",
		greeting: "Welcome, Hub Manager",
		source:   models.SourceHubAdmin,
	}
}

func NewGaragePortalHandler(api *apiclient.Client) *PortalHandler {
	return &PortalHandler{
		api:      api,
		role:     session.RoleGarage,
		basePath: "/garage",
		greeting: "Welcome, Garage Manager",
		source:   models.SourceGarageAdmin,
	}
}

func (h *PortalHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	view.Render(w, r, "portal_dashboard.html", map[string]any{
		"Greeting": h.greeting,
		"BasePath": h.basePath,
	})
}

func (h *PortalHandler) Customers(w http.ResponseWriter, r *http.Request) {
	claims, _ := session.FromContext(r.Context())
	page := pageParam(r)

	data := map[string]any{
		"BasePath": h.basePath,
		"Page":     page,
		"HasPrev":  page > 1,
	}

	q := url.Values{
		"store_id": {claims.StoreID},
		"page":     {strconv.Itoa(page)},
		"limit":    {strconv.Itoa(customerPageLimit)},
	}
	var customers []models.Customer
	if err := h.api.Get(r.Context(), "/api/customers", q, &customers); err != nil {
		log.Printf("fetch portal customers: %v", err)
		data["Error"] = "Failed to load customers"
	}
	data["Customers"] = activeOnly(customers)
	view.Render(w, r, "portal_customers.html", data)
}

func (h *PortalHandler) CreateForm(w http.ResponseWriter, r *http.Request) {
	view.Render(w, r, "portal_customer_create.html", map[string]any{
		"BasePath": h.basePath,
		"Form":     models.Customer{Source: h.source},
	})
}

func (h *PortalHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, _ := session.FromContext(r.Context())

	form := models.Customer{
		FullName:    r.FormValue("full_name"),
		PhoneNumber: format.PhoneDigits(r.FormValue("phone_number")),
		Email:       r.FormValue("email"),
		Address: models.Address{
			Line1:   r.FormValue("address_line1"),
			City:    r.FormValue("address_city"),
			Pincode: r.FormValue("address_pincode"),
		},
		Source:      h.source,
		IsActive:    true,
		StoreID:     claims.StoreID,
		OnboardedBy: claims.StoreID,
	}

	v := make(validation.Violations)
	validation.Required("full_name", form.FullName, v)
	validation.Phone("phone_number", form.PhoneNumber, v)
	validation.Email("email", form.Email, v)
	if !v.Empty() {
		view.Render(w, r, "portal_customer_create.html", map[string]any{
			"BasePath": h.basePath,
			"Form":     form,
			"Errors":   v,
		})
		return
	}

	if err := h.api.Post(r.Context(), "/api/customers", form, nil); err != nil {
		log.Printf("create portal customer: %v", err)
		view.Render(w, r, "portal_customer_create.html", map[string]any{
			"BasePath": h.basePath,
			"Form":     form,
			"Error":    "Failed to create customer",
		})
		return
	}
	http.Redirect(w, r, h.basePath+"/customer", http.StatusSeeOther)
}
