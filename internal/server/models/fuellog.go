package models

import "time"

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

type FuelLogPatch struct {
	Date       *time.Time
	Mileage    *int
	FuelAmount *float64
	TotalCost  *float64
	Notes      *string
}

func (p FuelLogPatch) Apply(l *FuelLog) {
	if p.Date != nil {
		l.Date = *p.Date
	}
	if p.Mileage != nil {
		l.Mileage = *p.Mileage
	}
	if p.FuelAmount != nil {
		l.FuelAmount = *p.FuelAmount
	}
	if p.TotalCost != nil {
		l.TotalCost = *p.TotalCost
	}
	if p.Notes != nil {
		l.Notes = p.Notes
	}
}
