package domain

import "errors"

var (
	ErrShipmentNotFound      = errors.New("shipment not found")
	ErrDuplicateTrackingCode = errors.New("tracking code already exists")
	ErrForbidden             = errors.New("access denied")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrSessionRevoked     = errors.New("session revoked")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")

	ErrInvalidInvoice = errors.New("invalid invoice")
	ErrRenderFailed   = errors.New("failed to generate document")
)
