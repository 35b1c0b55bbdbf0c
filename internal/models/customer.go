package models

// Address is embedded in Customer; the API stores it as a nested object.
type Address struct {
	Line1   string `json:"line1,omitempty"`
	City    string `json:"city,omitempty"`
	Pincode string `json:"pincode,omitempty"`
}

// Customer source values mirror the API's onboarding channels.
const (
	SourceMainAdmin   = "main_admin"
	SourceHubAdmin    = "hub_admin"
	SourceGarageAdmin = "garage_admin"
	SourceWebsite     = "website"
)

type Customer struct {
	ID          string  `json:"id"`
	FullName    string  `json:"full_name"`
	PhoneNumber string  `json:"phone_number"`
	Email       string  `json:"email,omitempty"`
	Address     Address `json:"address"`
	Latitude    string  `json:"latitude,omitempty"`
	Longitude   string  `json:"longitude,omitempty"`
	Source      string  `json:"source"`
	IsActive    bool    `json:"is_active"`
	StoreID     string  `json:"store_id,omitempty"`
	OnboardedBy string  `json:"onboarded_by,omitempty"`
	CreatedAt   string  `json:"created_at,omitempty"`
}

// Vehicle is read-only in this portal; the API owns its lifecycle.
type Vehicle struct {
	ID            string `json:"id"`
	VehicleNumber string `json:"vehicle_number"`
	VehicleType   string `json:"vehicle_type"`
	Brand         string `json:"brand,omitempty"`
	Model         string `json:"model,omitempty"`
}

// LoyaltyCard is an optional read-only association to a Customer.
type LoyaltyCard struct {
	ID            string `json:"id"`
	CardNumber    string `json:"card_number"`
	PointsBalance int    `json:"points_balance"`
	Tier          string `json:"tier"`
}
