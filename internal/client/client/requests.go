package client

// Request bodies accepted by the API. Optional fields are omitted when nil
// so the server applies its own defaults.

type VehicleInput struct {
	Name         string `json:"name"`
	Make         string `json:"make"`
	VehicleModel string `json:"vehicleModel"`
	Year         int    `json:"year"`
	Mileage      *int   `json:"mileage,omitempty"`
}

type FuelLogInput struct {
	Date       *string `json:"date,omitempty"`
	Mileage    int     `json:"mileage"`
	FuelAmount float64 `json:"fuelAmount"`
	TotalCost  float64 `json:"totalCost"`
	Notes      *string `json:"notes,omitempty"`
}

type ServiceLogInput struct {
	Date        *string  `json:"date,omitempty"`
	Mileage     int      `json:"mileage"`
	ServiceType string   `json:"serviceType"`
	Description *string  `json:"description,omitempty"`
	Mechanic    *string  `json:"mechanic,omitempty"`
	TotalCost   *float64 `json:"totalCost,omitempty"`
	Notes       *string  `json:"notes,omitempty"`
}

type ReminderInput struct {
	Title      string  `json:"title"`
	Type       string  `json:"type"`
	DueDate    *string `json:"dueDate,omitempty"`
	DueMileage *int    `json:"dueMileage,omitempty"`
	Notes      *string `json:"notes,omitempty"`
}
