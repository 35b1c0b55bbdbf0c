package models

const (
	StoreTypeHub    = "hub"
	StoreTypeGarage = "garage"
)

// Store covers both hubs and garages; type discriminates.
// Alias is the generated login identifier and is immutable after creation.
type Store struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Type          string `json:"type"`
	Alias         string `json:"alias"`
	City          string `json:"city"`
	Address       string `json:"address"`
	Latitude      string `json:"latitude"`
	Longitude     string `json:"longitude"`
	ManagerName   string `json:"manager_name"`
	ManagerNumber string `json:"manager_number"`
	Password      string `json:"password,omitempty"`
}

// StoreTaskCapacity is the per-store override of a task type's default count.
type StoreTaskCapacity struct {
	StoreID    string `json:"store_id"`
	TaskTypeID string `json:"task_type_id"`
	Capacity   int    `json:"capacity"`
}

// GarageHubTags is the write shape for tagging a garage to its backing hubs.
type GarageHubTags struct {
	GarageID string   `json:"garage_id"`
	HubIDs   []string `json:"hub_ids"`
}

// GarageHubTag is the row shape the API returns when listing a garage's tags.
type GarageHubTag struct {
	GarageID string `json:"garage_id,omitempty"`
	HubID    string `json:"hub_id"`
}
