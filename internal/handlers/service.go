package handlers

import (
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/autocare24/admin-portal/internal/apiclient"
	"github.com/autocare24/admin-portal/internal/models"
	"github.com/autocare24/admin-portal/internal/validation"
	"github.com/autocare24/admin-portal/internal/view"
)

type ServiceHandler struct {
	api *apiclient.Client
}

func NewServiceHandler(api *apiclient.Client) *ServiceHandler {
	return &ServiceHandler{api: api}
}

func splitTags(s string) []string {
	parts := strings.Split(s, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// parseAddons reads one addon per line in the form "Name | price".
// Lines without a parseable price are skipped.
func parseAddons(s string) []models.Addon {
	var addons []models.Addon
	for _, line := range strings.Split(s, "\n") {
		parts := strings.SplitN(line, "|", 2)
		if len(parts) != 2 {
			continue
		}
		name := strings.TrimSpace(parts[0])
		price, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if name == "" || err != nil {
			continue
		}
		addons = append(addons, models.Addon{Name: name, Price: price})
	}
	return addons
}

// parseSubservices reads one subservice per line in the form
// "Name | price" or "Name | price | optional".
func parseSubservices(s string) []models.Subservice {
	var subs []models.Subservice
	for _, line := range strings.Split(s, "\n") {
		parts := strings.Split(line, "|")
		if len(parts) < 2 {
			continue
		}
		name := strings.TrimSpace(parts[0])
		price, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if name == "" || err != nil {
			continue
		}
		optional := len(parts) > 2 && strings.EqualFold(strings.TrimSpace(parts[2]), "optional")
		subs = append(subs, models.Subservice{Name: name, Price: price, IsOptional: optional})
	}
	return subs
}

func serviceFromForm(r *http.Request) models.Service {
	duration, _ := strconv.Atoi(r.FormValue("duration_minutes"))
	return models.Service{
		Name:                     r.FormValue("name"),
		TaskTypeID:               r.FormValue("task_type_id"),
		Tags:                     splitTags(r.FormValue("tags")),
		DurationMinutes:          duration,
		IsActive:                 r.FormValue("is_active") != "",
		IsVisibleToCustomer:      r.FormValue("is_visible_to_customer") != "",
		IsTemporarilyUnavailable: r.FormValue("is_temporarily_unavailable") != "",
		Addons:                   parseAddons(r.FormValue("addons")),
		Subservices:              parseSubservices(r.FormValue("subservices")),
	}
}

func (h *ServiceHandler) List(w http.ResponseWriter, r *http.Request) {
	h.renderList(w, r, "")
}

func (h *ServiceHandler) renderList(w http.ResponseWriter, r *http.Request, errMsg string) {
	data := map[string]any{}
	if errMsg != "" {
		data["Error"] = errMsg
	}

	var services []models.Service
	if err := h.api.Get(r.Context(), "/api/services", nil, &services); err != nil {
		log.Printf("fetch services: %v", err)
		data["Error"] = "Failed to load services"
	}
	var taskTypes []models.TaskType
	if err := h.api.Get(r.Context(), "/api/task-types", nil, &taskTypes); err != nil {
		log.Printf("fetch task types: %v", err)
	}
	taskNames := make(map[string]string, len(taskTypes))
	for _, t := range taskTypes {
		taskNames[t.ID] = t.Name
	}

	data["Services"] = services
	data["TaskTypes"] = taskTypes
	data["TaskNames"] = taskNames
	view.Render(w, r, "services.html", data)
}

func (h *ServiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	form := serviceFromForm(r)

	v := make(validation.Violations)
	validation.Required("name", form.Name, v)
	validation.Required("task_type_id", form.TaskTypeID, v)
	if !v.Empty() {
		h.renderList(w, r, "Failed to save service")
		return
	}

	if err := h.api.Post(r.Context(), "/api/services", form, nil); err != nil {
		log.Printf("create service: %v", err)
		h.renderList(w, r, "Failed to save service")
		return
	}
	http.Redirect(w, r, "/admin/dashboard/store-task/services", http.StatusSeeOther)
}

func (h *ServiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	form := serviceFromForm(r)

	v := make(validation.Violations)
	validation.Required("name", form.Name, v)
	validation.Required("task_type_id", form.TaskTypeID, v)
	if !v.Empty() {
		h.renderList(w, r, "Failed to save service")
		return
	}

	if err := h.api.Patch(r.Context(), "/api/services/"+id, form, nil); err != nil {
		log.Printf("update service %s: %v", id, err)
		h.renderList(w, r, "Failed to save service")
		return
	}
	http.Redirect(w, r, "/admin/dashboard/store-task/services", http.StatusSeeOther)
}

func (h *ServiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.api.Delete(r.Context(), "/api/services/"+id); err != nil {
		log.Printf("delete service %s: %v", id, err)
		h.renderList(w, r, "Failed to delete")
		return
	}
	http.Redirect(w, r, "/admin/dashboard/store-task/services", http.StatusSeeOther)
}

// Overview renders the store-task page: every task type with the services
// attached to it.
func (h *ServiceHandler) Overview(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{}

	var taskTypes []models.TaskType
	if err := h.api.Get(r.Context(), "/api/task-types", nil, &taskTypes); err != nil {
		log.Printf("fetch task types: %v", err)
		data["Error"] = "Failed to load task types"
	}

	type taskGroup struct {
		TaskType models.TaskType
		Services []models.Service
	}
	groups := make([]taskGroup, 0, len(taskTypes))
	for _, t := range taskTypes {
		var services []models.Service
		q := url.Values{"task_type_id": {t.ID}}
		if err := h.api.Get(r.Context(), "/api/services", q, &services); err != nil {
			log.Printf("fetch services for task %s: %v", t.ID, err)
		}
		groups = append(groups, taskGroup{TaskType: t, Services: services})
	}

	data["Groups"] = groups
	view.Render(w, r, "store_task.html", data)
}
