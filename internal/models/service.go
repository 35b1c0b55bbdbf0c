package models

// Addon and Subservice are value objects embedded in Service; they have no
// independent lifecycle in the API.
type Addon struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type Subservice struct {
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	IsOptional bool    `json:"is_optional"`
}

type Service struct {
	ID                       string       `json:"id"`
	Name                     string       `json:"name"`
	TaskTypeID               string       `json:"task_type_id"`
	Tags                     []string     `json:"tags"`
	DurationMinutes          int          `json:"duration_minutes,omitempty"`
	IsActive                 bool         `json:"is_active"`
	IsVisibleToCustomer      bool         `json:"is_visible_to_customer"`
	IsTemporarilyUnavailable bool         `json:"is_temporarily_unavailable"`
	Addons                   []Addon      `json:"addons"`
	Subservices              []Subservice `json:"subservices"`
	CreatedAt                string       `json:"created_at,omitempty"`
}
