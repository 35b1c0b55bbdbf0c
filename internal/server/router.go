package server

import (
	"encoding/json"
	"net/http"

	"github.com/autocare24/admin-portal/internal/apiclient"
	"github.com/autocare24/admin-portal/internal/handlers"
	"github.com/autocare24/admin-portal/internal/middleware"
	"github.com/autocare24/admin-portal/internal/session"
	"github.com/autocare24/admin-portal/internal/view"
)

// New constructs the root http.Handler with all routes and middlewares applied.
func New(api *apiclient.Client) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		view.Render(w, r, "home.html", nil)
	})

	auth := handlers.NewAuthHandler(api)
	mux.HandleFunc("GET /admin/login", auth.AdminLogin)
	mux.HandleFunc("POST /admin/login", auth.AdminLogin)
	mux.HandleFunc("GET /store/login", auth.StoreLogin)
	mux.HandleFunc("POST /store/login", auth.StoreLogin)
	mux.HandleFunc("GET /garage/login", auth.GarageLogin)
	mux.HandleFunc("POST /garage/login", auth.GarageLogin)
	mux.HandleFunc("GET /admin/logout", auth.Logout("/admin/login"))
	mux.HandleFunc("POST /admin/logout", auth.Logout("/admin/login"))
	mux.HandleFunc("GET /store/logout", auth.Logout("/store/login"))
	mux.HandleFunc("POST /store/logout", auth.Logout("/store/login"))
	mux.HandleFunc("GET /garage/logout", auth.Logout("/garage/login"))
	mux.HandleFunc("POST /garage/logout", auth.Logout("/garage/login"))

	adminGate := middleware.RequireRole(session.RoleAdmin, "/admin/login")
	admin := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, adminGate(h))
	}

	admin("GET /admin/dashboard", func(w http.ResponseWriter, r *http.Request) {
		view.Render(w, r, "admin_dashboard.html", nil)
	})

	ch := handlers.NewCustomerHandler(api)
	admin("GET /admin/dashboard/customer", ch.List)
	admin("GET /admin/dashboard/customer/create", ch.NewForm)
	admin("POST /admin/dashboard/customer/create", ch.Create)
	admin("GET /admin/dashboard/customer/export", ch.Export)
	admin("GET /admin/dashboard/customer/{id}", ch.EditForm)
	admin("POST /admin/dashboard/customer/{id}", ch.Update)
	admin("POST /admin/dashboard/customer/{id}/delete", ch.Delete)

	sh := handlers.NewStoreHandler(api)
	admin("GET /admin/dashboard/manage-store", sh.List)
	admin("GET /admin/dashboard/manage-store/create", sh.NewForm)
	admin("POST /admin/dashboard/manage-store/create", sh.Create)
	admin("GET /admin/dashboard/manage-store/{id}", sh.EditForm)
	admin("POST /admin/dashboard/manage-store/{id}", sh.Update)

	th := handlers.NewTaskTypeHandler(api)
	svh := handlers.NewServiceHandler(api)
	admin("GET /admin/dashboard/store-task", svh.Overview)
	admin("GET /admin/dashboard/store-task/task-types", th.List)
	admin("POST /admin/dashboard/store-task/task-types", th.Create)
	admin("POST /admin/dashboard/store-task/task-types/{id}", th.Update)
	admin("POST /admin/dashboard/store-task/task-types/{id}/delete", th.Delete)
	admin("GET /admin/dashboard/store-task/services", svh.List)
	admin("POST /admin/dashboard/store-task/services", svh.Create)
	admin("POST /admin/dashboard/store-task/services/{id}", svh.Update)
	admin("POST /admin/dashboard/store-task/services/{id}/delete", svh.Delete)

	storeGate := middleware.RequireRole(session.RoleStore, "/store/login")
	sp := handlers.NewStorePortalHandler(api)
	mux.Handle("GET /store/dashboard", storeGate(http.HandlerFunc(sp.Dashboard)))
	mux.Handle("GET /store/customer", storeGate(http.HandlerFunc(sp.Customers)))
	mux.Handle("GET /store/customer/create", storeGate(http.HandlerFunc(sp.CreateForm)))
	mux.Handle("POST /store/customer/create", storeGate(http.HandlerFunc(sp.Create)))

	garageGate := middleware.RequireRole(session.RoleGarage, "/garage/login")
	gp := handlers.NewGaragePortalHandler(api)
	mux.Handle("GET /garage/dashboard", garageGate(http.HandlerFunc(gp.Dashboard)))
	mux.Handle("GET /garage/customer", garageGate(http.HandlerFunc(gp.Customers)))
	mux.Handle("GET /garage/customer/create", garageGate(http.HandlerFunc(gp.CreateForm)))
	mux.Handle("POST /garage/customer/create", garageGate(http.HandlerFunc(gp.Create)))

	return middleware.Chain(mux,
		middleware.Recover,
		middleware.Logging,
		middleware.RequestID,
		middleware.Subdomain,
		session.Middleware,
	)
}
