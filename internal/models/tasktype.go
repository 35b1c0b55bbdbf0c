package models

const (
	SlotTypePerHour   = "per_hour"
	SlotTypeMaxPerDay = "max_per_day"
)

// TaskType is a category of billable work with a capacity model.
// Count is the default capacity; stores override it per task type.
type TaskType struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	AllowedInHub    bool   `json:"allowed_in_hub"`
	AllowedInGarage bool   `json:"allowed_in_garage"`
	SlotType        string `json:"slot_type"`
	Count           int    `json:"count"`
	CreatedAt       string `json:"created_at,omitempty"`
}
