package handlers

import (
	"log"
	"net/http"

	"github.com/autocare24/admin-portal/internal/apiclient"
	"github.com/autocare24/admin-portal/internal/format"
	"github.com/autocare24/admin-portal/internal/session"
	"github.com/autocare24/admin-portal/internal/view"
)

type AuthHandler struct {
	api *apiclient.Client
}

func NewAuthHandler(api *apiclient.Client) *AuthHandler {
	return &AuthHandler{api: api}
}

// storeLoginResponse is what /api/store-admin/login returns. Some API
// versions send the id as "id" rather than "store_id".
type storeLoginResponse struct {
	StoreID string `json:"store_id"`
	ID      string `json:"id"`
	Type    string `json:"type"`
}

func (r storeLoginResponse) storeID() string {
	if r.StoreID != "" {
		return r.StoreID
	}
	return r.ID
}

func (h *AuthHandler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		view.Render(w, r, "admin_login.html", nil)
		return
	}

	body := map[string]string{
		"username": r.FormValue("username"),
		"password": r.FormValue("password"),
	}
	if err := h.api.Post(r.Context(), "/api/admin-users/login", body, nil); err != nil {
		log.Printf("admin login failed: %v", err)
		view.Render(w, r, "admin_login.html", map[string]any{"Error": "Invalid credentials"})
		return
	}

	session.Create(w, session.Claims{Role: session.RoleAdmin})
	http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
}

type storeLoginPage struct {
	Template    string
	WantType    string
	Role        string
	Dashboard   string
	MismatchMsg string
	FailedMsg   string
}

func (h *AuthHandler) StoreLogin(w http.ResponseWriter, r *http.Request) {
	h.storeAdminLogin(w, r, storeLoginPage{
		Template:    "store_login.html",
		WantType:    "hub",
		Role:        session.RoleStore,
		Dashboard:   "/store/dashboard",
		MismatchMsg: "Invalid hub ID or password",
		FailedMsg:   "Login failed. Please try again.",
	})
}

func (h *AuthHandler) GarageLogin(w http.ResponseWriter, r *http.Request) {
	h.storeAdminLogin(w, r, storeLoginPage{
		Template:    "garage_login.html",
		WantType:    "garage",
		Role:        session.RoleGarage,
		Dashboard:   "/garage/dashboard",
		MismatchMsg: "Invalid ID or password",
		FailedMsg:   "Login failed. Please try again.",
	})
}

// storeAdminLogin handles hub and garage manager logins, which share the
// /api/store-admin/login endpoint and differ only in the expected store type.
func (h *AuthHandler) storeAdminLogin(w http.ResponseWriter, r *http.Request, page storeLoginPage) {
	if r.Method == http.MethodGet {
		view.Render(w, r, page.Template, nil)
		return
	}

	alias := format.StripLoginAlias(r.FormValue("store_id"))
	body := map[string]string{"alias": alias, "password": r.FormValue("password")}

	var resp storeLoginResponse
	if err := h.api.Post(r.Context(), "/api/store-admin/login", body, &resp); err != nil {
		log.Printf("%s login failed: %v", page.WantType, err)
		view.Render(w, r, page.Template, map[string]any{"Error": page.FailedMsg})
		return
	}

	if resp.storeID() == "" || resp.Type != page.WantType {
		view.Render(w, r, page.Template, map[string]any{"Error": page.MismatchMsg})
		return
	}

	session.Create(w, session.Claims{Role: page.Role, StoreID: resp.storeID()})
	http.Redirect(w, r, page.Dashboard, http.StatusSeeOther)
}

// Logout clears the session and returns to the given role's login page.
func (h *AuthHandler) Logout(loginPath string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session.Clear(w)
		http.Redirect(w, r, loginPath, http.StatusSeeOther)
	}
}
