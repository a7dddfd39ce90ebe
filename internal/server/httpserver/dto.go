package httpserver

import (
	"strings"
	"time"

	"github.com/dmitrijs2005/autokeeper/internal/server/models"
	"github.com/dmitrijs2005/autokeeper/internal/timex"
)

type credentialsRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type vehicleCreateRequest struct {
	Name         string `json:"name" validate:"required,max=100"`
	Make         string `json:"make" validate:"required,max=50"`
	VehicleModel string `json:"vehicleModel" validate:"required,max=50"`
	Year         int    `json:"year" validate:"required"`
	Mileage      *int   `json:"mileage" validate:"omitempty,min=0"`
}

func (r *vehicleCreateRequest) model() *models.Vehicle {
	return &models.Vehicle{
		Name:         strings.TrimSpace(r.Name),
		Make:         strings.TrimSpace(r.Make),
		VehicleModel: strings.TrimSpace(r.VehicleModel),
		Year:         r.Year,
		Mileage:      r.Mileage,
	}
}

type vehicleUpdateRequest struct {
	Name         *string `json:"name" validate:"omitempty,min=1,max=100"`
	Make         *string `json:"make" validate:"omitempty,min=1,max=50"`
	VehicleModel *string `json:"vehicleModel" validate:"omitempty,min=1,max=50"`
	Year         *int    `json:"year" validate:"omitempty"`
	Mileage      *int    `json:"mileage" validate:"omitempty,min=0"`
}

func (r *vehicleUpdateRequest) patch() models.VehiclePatch {
	return models.VehiclePatch{
		Name:         trimmed(r.Name),
		Make:         trimmed(r.Make),
		VehicleModel: trimmed(r.VehicleModel),
		Year:         r.Year,
		Mileage:      r.Mileage,
	}
}

type fuelLogCreateRequest struct {
	Date       *string  `json:"date" validate:"omitempty,isodate"`
	Mileage    *int     `json:"mileage" validate:"required,min=0"`
	FuelAmount *float64 `json:"fuelAmount" validate:"required,min=0"`
	TotalCost  *float64 `json:"totalCost" validate:"required,min=0"`
	Notes      *string  `json:"notes" validate:"omitempty,max=500"`
}

func (r *fuelLogCreateRequest) model() *models.FuelLog {
	l := &models.FuelLog{
		Mileage:    *r.Mileage,
		FuelAmount: *r.FuelAmount,
		TotalCost:  *r.TotalCost,
		Notes:      trimmed(r.Notes),
	}
	if d := parsedDate(r.Date); d != nil {
		l.Date = *d
	}
	return l
}

type fuelLogUpdateRequest struct {
	Date       *string  `json:"date" validate:"omitempty,isodate"`
	Mileage    *int     `json:"mileage" validate:"omitempty,min=0"`
	FuelAmount *float64 `json:"fuelAmount" validate:"omitempty,min=0"`
	TotalCost  *float64 `json:"totalCost" validate:"omitempty,min=0"`
	Notes      *string  `json:"notes" validate:"omitempty,max=500"`
}

func (r *fuelLogUpdateRequest) patch() models.FuelLogPatch {
	return models.FuelLogPatch{
		Date:       parsedDate(r.Date),
		Mileage:    r.Mileage,
		FuelAmount: r.FuelAmount,
		TotalCost:  r.TotalCost,
		Notes:      trimmed(r.Notes),
	}
}

type serviceLogCreateRequest struct {
	Date        *string  `json:"date" validate:"omitempty,isodate"`
	Mileage     *int     `json:"mileage" validate:"required,min=0"`
	ServiceType string   `json:"serviceType" validate:"required,max=100"`
	Description *string  `json:"description" validate:"omitempty,max=500"`
	Mechanic    *string  `json:"mechanic" validate:"omitempty,max=100"`
	TotalCost   *float64 `json:"totalCost" validate:"omitempty,min=0"`
	Notes       *string  `json:"notes" validate:"omitempty,max=500"`
}

func (r *serviceLogCreateRequest) model() *models.ServiceLog {
	l := &models.ServiceLog{
		Mileage:     *r.Mileage,
		ServiceType: strings.TrimSpace(r.ServiceType),
		Description: trimmed(r.Description),
		Mechanic:    trimmed(r.Mechanic),
		Notes:       trimmed(r.Notes),
	}
	if r.TotalCost != nil {
		l.TotalCost = *r.TotalCost
	}
	if d := parsedDate(r.Date); d != nil {
		l.Date = *d
	}
	return l
}

type serviceLogUpdateRequest struct {
	Date        *string  `json:"date" validate:"omitempty,isodate"`
	Mileage     *int     `json:"mileage" validate:"omitempty,min=0"`
	ServiceType *string  `json:"serviceType" validate:"omitempty,min=1,max=100"`
	Description *string  `json:"description" validate:"omitempty,max=500"`
	Mechanic    *string  `json:"mechanic" validate:"omitempty,max=100"`
	TotalCost   *float64 `json:"totalCost" validate:"omitempty,min=0"`
	Notes       *string  `json:"notes" validate:"omitempty,max=500"`
}

func (r *serviceLogUpdateRequest) patch() models.ServiceLogPatch {
	return models.ServiceLogPatch{
		Date:        parsedDate(r.Date),
		Mileage:     r.Mileage,
		ServiceType: trimmed(r.ServiceType),
		Description: trimmed(r.Description),
		Mechanic:    trimmed(r.Mechanic),
		TotalCost:   r.TotalCost,
		Notes:       trimmed(r.Notes),
	}
}

type reminderCreateRequest struct {
	Title      string  `json:"title" validate:"required,max=200"`
	Type       string  `json:"type" validate:"required,oneof=date mileage"`
	DueDate    *string `json:"dueDate" validate:"omitempty,isodate"`
	DueMileage *int    `json:"dueMileage" validate:"omitempty,min=0"`
	Notes      *string `json:"notes" validate:"omitempty,max=500"`
}

func (r *reminderCreateRequest) model() *models.Reminder {
	return &models.Reminder{
		Title:      strings.TrimSpace(r.Title),
		Type:       models.ReminderType(r.Type),
		DueDate:    parsedDate(r.DueDate),
		DueMileage: r.DueMileage,
		Notes:      trimmed(r.Notes),
	}
}

type reminderUpdateRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=200"`
	Type        *string `json:"type" validate:"omitempty,oneof=date mileage"`
	DueDate     *string `json:"dueDate" validate:"omitempty,isodate"`
	DueMileage  *int    `json:"dueMileage" validate:"omitempty,min=0"`
	IsCompleted *bool   `json:"isCompleted"`
	Notes       *string `json:"notes" validate:"omitempty,max=500"`
}

func (r *reminderUpdateRequest) patch() models.ReminderPatch {
	p := models.ReminderPatch{
		Title:       trimmed(r.Title),
		DueDate:     parsedDate(r.DueDate),
		DueMileage:  r.DueMileage,
		IsCompleted: r.IsCompleted,
		Notes:       trimmed(r.Notes),
	}
	if r.Type != nil {
		t := models.ReminderType(*r.Type)
		p.Type = &t
	}
	return p
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}

// parsedDate converts an already validated date string.
func parsedDate(s *string) *time.Time {
	if s == nil {
		return nil
	}
	t, err := timex.ParseDate(*s)
	if err != nil {
		return nil
	}
	return &t
}
