package models

import "time"

type Vehicle struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Make         string    `json:"make"`
	VehicleModel string    `json:"vehicleModel"`
	Year         int       `json:"year"`
	Mileage      *int      `json:"mileage,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type FuelLog struct {
	ID         string    `json:"id"`
	VehicleID  string    `json:"vehicleId"`
	Date       time.Time `json:"date"`
	Mileage    int       `json:"mileage"`
	FuelAmount float64   `json:"fuelAmount"`
	TotalCost  float64   `json:"totalCost"`
	Notes      *string   `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type ServiceLog struct {
	ID          string    `json:"id"`
	VehicleID   string    `json:"vehicleId"`
	Date        time.Time `json:"date"`
	Mileage     int       `json:"mileage"`
	ServiceType string    `json:"serviceType"`
	Description *string   `json:"description,omitempty"`
	Mechanic    *string   `json:"mechanic,omitempty"`
	TotalCost   float64   `json:"totalCost"`
	Notes       *string   `json:"notes,omitempty"`
	ReceiptKey  *string   `json:"receiptKey,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ReceiptURL is a presigned URL for uploading or downloading a receipt.
type ReceiptURL struct {
	URL       string    `json:"url"`
	Key       string    `json:"key"`
	ExpiresAt time.Time `json:"expiresAt"`
}
