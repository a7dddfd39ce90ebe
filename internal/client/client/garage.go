package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/autokeeper/internal/client/models"
)

func pageQuery(page, limit int, extra url.Values) string {
	q := url.Values{}
	for k, v := range extra {
		q[k] = v
	}
	if page > 0 {
		q.Set("page", fmt.Sprint(page))
	}
	if limit > 0 {
		q.Set("limit", fmt.Sprint(limit))
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

func (c *APIClient) ListVehicles(ctx context.Context) ([]models.Vehicle, error) {
	var data struct {
		Vehicles []models.Vehicle `json:"vehicles"`
	}
	if _, err := c.call(ctx, http.MethodGet, "/api/vehicles", nil, true, &data); err != nil {
		return nil, err
	}
	return data.Vehicles, nil
}

func (c *APIClient) CreateVehicle(ctx context.Context, in VehicleInput) (*models.Vehicle, error) {
	var data struct {
		Vehicle *models.Vehicle `json:"vehicle"`
	}
	if _, err := c.call(ctx, http.MethodPost, "/api/vehicles", in, true, &data); err != nil {
		return nil, err
	}
	return data.Vehicle, nil
}

func (c *APIClient) DeleteVehicle(ctx context.Context, id string) error {
	_, err := c.call(ctx, http.MethodDelete, "/api/vehicles/"+url.PathEscape(id), nil, true, nil)
	return err
}

func (c *APIClient) ListFuelLogs(ctx context.Context, vehicleID string, page, limit int) ([]models.FuelLog, *models.Pagination, error) {
	var data struct {
		FuelLogs []models.FuelLog `json:"fuelLogs"`
	}
	p, err := c.call(ctx, http.MethodGet, "/api/fuel-logs/"+url.PathEscape(vehicleID)+pageQuery(page, limit, nil), nil, true, &data)
	if err != nil {
		return nil, nil, err
	}
	return data.FuelLogs, p, nil
}

func (c *APIClient) CreateFuelLog(ctx context.Context, vehicleID string, in FuelLogInput) (*models.FuelLog, error) {
	var data struct {
		FuelLog *models.FuelLog `json:"fuelLog"`
	}
	if _, err := c.call(ctx, http.MethodPost, "/api/fuel-logs/"+url.PathEscape(vehicleID), in, true, &data); err != nil {
		return nil, err
	}
	return data.FuelLog, nil
}

func (c *APIClient) ListServiceLogs(ctx context.Context, vehicleID string, page, limit int) ([]models.ServiceLog, *models.Pagination, error) {
	var data struct {
		ServiceLogs []models.ServiceLog `json:"serviceLogs"`
	}
	p, err := c.call(ctx, http.MethodGet, "/api/service-logs/"+url.PathEscape(vehicleID)+pageQuery(page, limit, nil), nil, true, &data)
	if err != nil {
		return nil, nil, err
	}
	return data.ServiceLogs, p, nil
}

func (c *APIClient) CreateServiceLog(ctx context.Context, vehicleID string, in ServiceLogInput) (*models.ServiceLog, error) {
	var data struct {
		ServiceLog *models.ServiceLog `json:"serviceLog"`
	}
	if _, err := c.call(ctx, http.MethodPost, "/api/service-logs/"+url.PathEscape(vehicleID), in, true, &data); err != nil {
		return nil, err
	}
	return data.ServiceLog, nil
}

func receiptPath(vehicleID, serviceLogID string) string {
	return "/api/service-logs/" + url.PathEscape(vehicleID) + "/" + url.PathEscape(serviceLogID) + "/receipt"
}

// ReceiptUploadURL asks the server for a presigned PUT URL for a new
// receipt of the given service log.
func (c *APIClient) ReceiptUploadURL(ctx context.Context, vehicleID, serviceLogID string) (*models.ReceiptURL, error) {
	var data struct {
		Receipt *models.ReceiptURL `json:"receipt"`
	}
	if _, err := c.call(ctx, http.MethodPost, receiptPath(vehicleID, serviceLogID), nil, true, &data); err != nil {
		return nil, err
	}
	return data.Receipt, nil
}

func (c *APIClient) ReceiptDownloadURL(ctx context.Context, vehicleID, serviceLogID string) (*models.ReceiptURL, error) {
	var data struct {
		Receipt *models.ReceiptURL `json:"receipt"`
	}
	if _, err := c.call(ctx, http.MethodGet, receiptPath(vehicleID, serviceLogID), nil, true, &data); err != nil {
		return nil, err
	}
	return data.Receipt, nil
}

func (c *APIClient) ListReminders(ctx context.Context, vehicleID string, filter models.ReminderFilter, page, limit int) ([]models.Reminder, *models.Pagination, error) {
	var data struct {
		Reminders []models.Reminder `json:"reminders"`
	}
	extra := url.Values{}
	if filter != "" {
		extra.Set("filter", string(filter))
	}
	p, err := c.call(ctx, http.MethodGet, "/api/reminders/"+url.PathEscape(vehicleID)+pageQuery(page, limit, extra), nil, true, &data)
	if err != nil {
		return nil, nil, err
	}
	return data.Reminders, p, nil
}

func (c *APIClient) CreateReminder(ctx context.Context, vehicleID string, in ReminderInput) (*models.Reminder, error) {
	var data struct {
		Reminder *models.Reminder `json:"reminder"`
	}
	if _, err := c.call(ctx, http.MethodPost, "/api/reminders/"+url.PathEscape(vehicleID), in, true, &data); err != nil {
		return nil, err
	}
	return data.Reminder, nil
}

func (c *APIClient) CompleteReminder(ctx context.Context, vehicleID, id string) (*models.Reminder, error) {
	var data struct {
		Reminder *models.Reminder `json:"reminder"`
	}
	path := "/api/reminders/" + url.PathEscape(vehicleID) + "/" + url.PathEscape(id) + "/complete"
	if _, err := c.call(ctx, http.MethodPost, path, nil, true, &data); err != nil {
		return nil, err
	}
	return data.Reminder, nil
}
