package services

import "github.com/dmitrijs2005/autokeeper/internal/common"

var (
	errEmailTaken         = common.NewError(common.ErrConflict, "User with this email already exists")
	errInvalidCredentials = common.NewError(common.ErrInvalidCredentials, "Invalid credentials")
	errInvalidRefresh     = common.NewError(common.ErrInvalidToken, "Invalid refresh token")
	errUserNotFound       = common.NewError(common.ErrNotFound, "User not found")
	errPasswordTooLong    = common.NewError(common.ErrValidation, "Validation error: password must be at most 72 bytes")

	errVehicleNotFound    = common.NewError(common.ErrNotFound, "Vehicle not found or access denied")
	errFuelLogNotFound    = common.NewError(common.ErrNotFound, "Fuel log not found")
	errServiceLogNotFound = common.NewError(common.ErrNotFound, "Service log not found")
	errReceiptNotFound    = common.NewError(common.ErrNotFound, "Receipt not found")
	errReminderNotFound   = common.NewError(common.ErrNotFound, "Reminder not found")

	errAlreadyCompleted = common.NewError(common.ErrConflict, "Reminder is already completed")
	errNotCompleted     = common.NewError(common.ErrConflict, "Reminder is not completed")
)
