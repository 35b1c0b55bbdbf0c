package handlers

import (
	"log"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/autocare24/admin-portal/internal/apiclient"
	"github.com/autocare24/admin-portal/internal/format"
	"github.com/autocare24/admin-portal/internal/models"
	"github.com/autocare24/admin-portal/internal/validation"
	"github.com/autocare24/admin-portal/internal/view"
)

type StoreHandler struct {
	api *apiclient.Client
}

func NewStoreHandler(api *apiclient.Client) *StoreHandler {
	return &StoreHandler{api: api}
}

func matchesSearch(s models.Store, q string) bool {
	if q == "" {
		return true
	}
	q = strings.ToLower(q)
	return strings.Contains(strings.ToLower(s.Name), q) ||
		strings.Contains(strings.ToLower(s.City), q) ||
		strings.Contains(strings.ToLower(s.Alias), q)
}

func (h *StoreHandler) List(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("q")
	cityFilter := r.URL.Query().Get("city")

	data := map[string]any{
		"Search": search,
		"City":   cityFilter,
		"Stores": []models.Store{},
		"Cities": []string{},
	}

	var stores []models.Store
	if err := h.api.Get(r.Context(), "/api/stores", nil, &stores); err != nil {
		log.Printf("fetch stores: %v", err)
		data["Error"] = "Failed to load stores"
		view.Render(w, r, "stores.html", data)
		return
	}

	cities := map[string]bool{}
	filtered := make([]models.Store, 0, len(stores))
	for _, s := range stores {
		cities[s.City] = true
		if !matchesSearch(s, search) {
			continue
		}
		if cityFilter != "" && !strings.EqualFold(s.City, cityFilter) {
			continue
		}
		filtered = append(filtered, s)
	}

	cityList := make([]string, 0, len(cities))
	for c := range cities {
		if c != "" {
			cityList = append(cityList, c)
		}
	}
	sort.Strings(cityList)

	data["Stores"] = filtered
	data["Cities"] = cityList
	view.Render(w, r, "stores.html", data)
}

// storeFormData gathers everything the create/edit form needs for a given
// store type: the task catalog with default capacities and, for garages, the
// hub checklist.
type storeFormData struct {
	TaskTypes  []models.TaskType
	Capacities map[string]int
	Hubs       []models.Store
}

func (h *StoreHandler) formData(r *http.Request, storeType string) (storeFormData, error) {
	d := storeFormData{Capacities: map[string]int{}}

	q := url.Values{"storeType": {storeType}}
	if err := h.api.Get(r.Context(), "/api/task-types", q, &d.TaskTypes); err != nil {
		return d, err
	}
	for _, t := range d.TaskTypes {
		d.Capacities[t.ID] = t.Count
	}

	if storeType == models.StoreTypeGarage {
		hq := url.Values{"type": {models.StoreTypeHub}}
		if err := h.api.Get(r.Context(), "/api/stores", hq, &d.Hubs); err != nil {
			return d, err
		}
	}
	return d, nil
}

func (h *StoreHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	storeType := r.URL.Query().Get("type")
	if storeType != models.StoreTypeGarage {
		storeType = models.StoreTypeHub
	}

	data := map[string]any{
		"StoreType":    storeType,
		"Alias":        format.NewAlias(),
		"Name":         "",
		"SelectedHubs": map[string]bool{},
	}
	fd, err := h.formData(r, storeType)
	if err != nil {
		log.Printf("store form data: %v", err)
		data["Error"] = "Failed to fetch data"
	}
	data["TaskTypes"] = fd.TaskTypes
	data["Capacities"] = fd.Capacities
	data["Hubs"] = fd.Hubs

	view.Render(w, r, "store_create.html", data)
}

func storeFromForm(r *http.Request) models.Store {
	storeType := r.FormValue("type")
	if storeType != models.StoreTypeGarage {
		storeType = models.StoreTypeHub
	}
	alias := r.FormValue("alias")
	if !format.ValidAlias(alias) {
		alias = format.NewAlias()
	}
	return models.Store{
		Name:          format.PrefixStoreName(r.FormValue("name")),
		Type:          storeType,
		Alias:         alias,
		City:          r.FormValue("city"),
		Address:       r.FormValue("address"),
		Latitude:      r.FormValue("latitude"),
		Longitude:     r.FormValue("longitude"),
		ManagerName:   r.FormValue("manager_name"),
		ManagerNumber: format.PhoneDigits(r.FormValue("manager_number")),
		Password:      r.FormValue("password"),
	}
}

// capacitiesFromForm reads the per-task capacity inputs. Task ids travel as
// hidden task_type_ids fields so the posted catalog is explicit.
func capacitiesFromForm(r *http.Request, storeID string) []models.StoreTaskCapacity {
	ids := r.Form["task_type_ids"]
	rows := make([]models.StoreTaskCapacity, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		capVal, _ := strconv.Atoi(r.FormValue("cap_" + id))
		if capVal < 0 {
			capVal = 0
		}
		rows = append(rows, models.StoreTaskCapacity{StoreID: storeID, TaskTypeID: id, Capacity: capVal})
	}
	return rows
}

// Create performs the three-step store setup: create the store, set its task
// capacities and, for a garage, tag its hubs. The API offers no transaction
// across these, so a failure after the first step compensates by deleting
// the just-created store rather than leaving it half configured.
func (h *StoreHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	form := storeFromForm(r)

	rerender := func(data map[string]any) {
		fd, ferr := h.formData(r, form.Type)
		if ferr != nil {
			log.Printf("store form data: %v", ferr)
		}
		data["StoreType"] = form.Type
		data["Alias"] = form.Alias
		data["Form"] = form
		data["Name"] = format.UnprefixStoreName(form.Name)
		data["TaskTypes"] = fd.TaskTypes
		data["Capacities"] = fd.Capacities
		data["Hubs"] = fd.Hubs
		data["SelectedHubs"] = selectedHubSet(r.Form["hub_ids"])
		view.Render(w, r, "store_create.html", data)
	}

	v := make(validation.Violations)
	validation.Required("name", format.UnprefixStoreName(form.Name), v)
	if !v.Empty() {
		rerender(map[string]any{"Error": "Store name cannot be empty"})
		return
	}

	var created models.Store
	if err := h.api.Post(r.Context(), "/api/store-admin", form, &created); err != nil {
		log.Printf("create store: %v", err)
		rerender(map[string]any{"Error": "Failed to create store"})
		return
	}

	rollback := func(stage string, err error) {
		log.Printf("create store %s failed at %s: %v", created.ID, stage, err)
		if derr := h.api.Delete(r.Context(), "/api/stores/"+created.ID); derr != nil {
			log.Printf("rollback store %s: %v", created.ID, derr)
		}
		rerender(map[string]any{"Error": "Failed to create store"})
	}

	caps := capacitiesFromForm(r, created.ID)
	if err := h.api.Post(r.Context(), "/api/store-task-capacities", caps, nil); err != nil {
		rollback("task capacities", err)
		return
	}

	if form.Type == models.StoreTypeGarage {
		if hubIDs := r.Form["hub_ids"]; len(hubIDs) > 0 {
			tags := models.GarageHubTags{GarageID: created.ID, HubIDs: hubIDs}
			if err := h.api.Post(r.Context(), "/api/garage-hub-tags", tags, nil); err != nil {
				rollback("hub tags", err)
				return
			}
		}
	}

	http.Redirect(w, r, "/admin/dashboard/manage-store", http.StatusSeeOther)
}

func selectedHubSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

func (h *StoreHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var store models.Store
	if err := h.api.Get(r.Context(), "/api/stores/"+id, nil, &store); err != nil {
		log.Printf("fetch store %s: %v", id, err)
		http.NotFound(w, r)
		return
	}

	data := map[string]any{
		"Store":     store,
		"StoreType": store.Type,
		"Name":      format.UnprefixStoreName(store.Name),
		"Alias":     store.Alias,
	}

	fd, err := h.formData(r, store.Type)
	if err != nil {
		log.Printf("store form data: %v", err)
		data["Error"] = "Failed to load store data."
	}

	var caps []models.StoreTaskCapacity
	if err := h.api.Get(r.Context(), "/api/store-task-capacities/"+id, nil, &caps); err != nil {
		log.Printf("fetch capacities for %s: %v", id, err)
	}
	for _, c := range caps {
		fd.Capacities[c.TaskTypeID] = c.Capacity
	}

	selected := map[string]bool{}
	if store.Type == models.StoreTypeGarage {
		var tags []models.GarageHubTag
		tq := url.Values{"garage_id": {id}}
		if err := h.api.Get(r.Context(), "/api/garage-hub-tags", tq, &tags); err != nil {
			log.Printf("fetch hub tags for %s: %v", id, err)
		}
		for _, t := range tags {
			selected[t.HubID] = true
		}
	}

	data["TaskTypes"] = fd.TaskTypes
	data["Capacities"] = fd.Capacities
	data["Hubs"] = fd.Hubs
	data["SelectedHubs"] = selected

	view.Render(w, r, "store_edit.html", data)
}

// Update saves store fields, capacities and hub tags. The alias is immutable:
// whatever the form posts, the stored alias wins.
func (h *StoreHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	var existing models.Store
	if err := h.api.Get(r.Context(), "/api/stores/"+id, nil, &existing); err != nil {
		log.Printf("fetch store %s: %v", id, err)
		http.NotFound(w, r)
		return
	}

	form := storeFromForm(r)
	form.ID = id
	form.Type = existing.Type
	form.Alias = existing.Alias

	rerenderErr := func(msg string) {
		fd, _ := h.formData(r, form.Type)
		view.Render(w, r, "store_edit.html", map[string]any{
			"Store":        form,
			"StoreType":    form.Type,
			"Name":         format.UnprefixStoreName(form.Name),
			"Alias":        form.Alias,
			"Error":        msg,
			"TaskTypes":    fd.TaskTypes,
			"Capacities":   fd.Capacities,
			"Hubs":         fd.Hubs,
			"SelectedHubs": selectedHubSet(r.Form["hub_ids"]),
		})
	}

	if format.UnprefixStoreName(form.Name) == "" {
		rerenderErr("Store name cannot be empty")
		return
	}

	if err := h.api.Put(r.Context(), "/api/stores/"+id, form, nil); err != nil {
		log.Printf("update store %s: %v", id, err)
		rerenderErr("Failed to update store.")
		return
	}

	caps := capacitiesFromForm(r, id)
	if len(caps) > 0 {
		if err := h.api.Put(r.Context(), "/api/store-task-capacities", caps, nil); err != nil {
			log.Printf("update capacities for %s: %v", id, err)
			rerenderErr("Failed to update store.")
			return
		}
	}

	if form.Type == models.StoreTypeGarage {
		tags := models.GarageHubTags{GarageID: id, HubIDs: r.Form["hub_ids"]}
		if tags.HubIDs == nil {
			tags.HubIDs = []string{}
		}
		if err := h.api.Put(r.Context(), "/api/garage-hub-tags", tags, nil); err != nil {
			log.Printf("update hub tags for %s: %v", id, err)
			rerenderErr("Failed to update store.")
			return
		}
	}

	http.Redirect(w, r, "/admin/dashboard/manage-store", http.StatusSeeOther)
}
