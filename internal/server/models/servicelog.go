package models

import "time"

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

type ServiceLogPatch struct {
	Date        *time.Time
	Mileage     *int
	ServiceType *string
	Description *string
	Mechanic    *string
	TotalCost   *float64
	Notes       *string
}

func (p ServiceLogPatch) Apply(l *ServiceLog) {
	if p.Date != nil {
		l.Date = *p.Date
	}
	if p.Mileage != nil {
		l.Mileage = *p.Mileage
	}
	if p.ServiceType != nil {
		l.ServiceType = *p.ServiceType
	}
	if p.Description != nil {
		l.Description = p.Description
	}
	if p.Mechanic != nil {
		l.Mechanic = p.Mechanic
	}
	if p.TotalCost != nil {
		l.TotalCost = *p.TotalCost
	}
	if p.Notes != nil {
		l.Notes = p.Notes
	}
}

// ReceiptURL is a presigned object-storage URL for a service-log receipt.
type ReceiptURL struct {
	URL       string    `json:"url"`
	Key       string    `json:"key"`
	ExpiresAt time.Time `json:"expiresAt"`
}
