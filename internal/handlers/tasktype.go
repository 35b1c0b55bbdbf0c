package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/autocare24/admin-portal/internal/apiclient"
	"github.com/autocare24/admin-portal/internal/models"
	"github.com/autocare24/admin-portal/internal/validation"
	"github.com/autocare24/admin-portal/internal/view"
)

type TaskTypeHandler struct {
	api *apiclient.Client
}

func NewTaskTypeHandler(api *apiclient.Client) *TaskTypeHandler {
	return &TaskTypeHandler{api: api}
}

func (h *TaskTypeHandler) List(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{}
	var taskTypes []models.TaskType
	if err := h.api.Get(r.Context(), "/api/task-types", nil, &taskTypes); err != nil {
		log.Printf("fetch task types: %v", err)
		data["Error"] = "Failed to load task types"
	}
	data["TaskTypes"] = taskTypes
	view.Render(w, r, "task_types.html", data)
}

func taskTypeFromForm(r *http.Request) models.TaskType {
	count, _ := strconv.Atoi(r.FormValue("count"))
	slotType := r.FormValue("slot_type")
	if slotType != models.SlotTypePerHour {
		slotType = models.SlotTypeMaxPerDay
	}
	return models.TaskType{
		Name:            r.FormValue("name"),
		AllowedInHub:    r.FormValue("allowed_in_hub") != "",
		AllowedInGarage: r.FormValue("allowed_in_garage") != "",
		SlotType:        slotType,
		Count:           count,
	}
}

func (h *TaskTypeHandler) validate(t models.TaskType) validation.Violations {
	v := make(validation.Violations)
	validation.Required("name", t.Name, v)
	validation.NonNegativeInt("count", t.Count, v)
	return v
}

func (h *TaskTypeHandler) Create(w http.ResponseWriter, r *http.Request) {
	form := taskTypeFromForm(r)
	if v := h.validate(form); !v.Empty() {
		h.listWithError(w, r, "Failed to save task type")
		return
	}
	if err := h.api.Post(r.Context(), "/api/task-types", form, nil); err != nil {
		log.Printf("create task type: %v", err)
		h.listWithError(w, r, "Failed to save task type")
		return
	}
	http.Redirect(w, r, "/admin/dashboard/store-task/task-types", http.StatusSeeOther)
}

func (h *TaskTypeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	form := taskTypeFromForm(r)
	if v := h.validate(form); !v.Empty() {
		h.listWithError(w, r, "Failed to save task type")
		return
	}
	if err := h.api.Patch(r.Context(), "/api/task-types/"+id, form, nil); err != nil {
		log.Printf("update task type %s: %v", id, err)
		h.listWithError(w, r, "Failed to save task type")
		return
	}
	http.Redirect(w, r, "/admin/dashboard/store-task/task-types", http.StatusSeeOther)
}

func (h *TaskTypeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.api.Delete(r.Context(), "/api/task-types/"+id); err != nil {
		log.Printf("delete task type %s: %v", id, err)
		h.listWithError(w, r, "Failed to delete")
		return
	}
	http.Redirect(w, r, "/admin/dashboard/store-task/task-types", http.StatusSeeOther)
}

func (h *TaskTypeHandler) listWithError(w http.ResponseWriter, r *http.Request, msg string) {
	var taskTypes []models.TaskType
	if err := h.api.Get(r.Context(), "/api/task-types", nil, &taskTypes); err != nil {
		log.Printf("fetch task types: %v", err)
	}
	view.Render(w, r, "task_types.html", map[string]any{
		"TaskTypes": taskTypes,
		"Error":     msg,
	})
}
