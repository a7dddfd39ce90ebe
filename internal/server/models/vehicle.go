package models

import "time"

const MinVehicleYear = 1900

type Vehicle struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	Name         string    `json:"name"`
	Make         string    `json:"make"`
	VehicleModel string    `json:"vehicleModel"`
	Year         int       `json:"year"`
	Mileage      *int      `json:"mileage,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// MaxVehicleYear is the newest model year accepted at time now.
func MaxVehicleYear(now time.Time) int {
	return now.Year() + 1
}

// VehiclePatch is a partial update; nil fields are left untouched.
type VehiclePatch struct {
	Name         *string
	Make         *string
	VehicleModel *string
	Year         *int
	Mileage      *int
}

func (p VehiclePatch) Apply(v *Vehicle) {
	if p.Name != nil {
		v.Name = *p.Name
	}
	if p.Make != nil {
		v.Make = *p.Make
	}
	if p.VehicleModel != nil {
		v.VehicleModel = *p.VehicleModel
	}
	if p.Year != nil {
		v.Year = *p.Year
	}
	if p.Mileage != nil {
		v.Mileage = p.Mileage
	}
}
