package dto

import "github.com/ahmetcoskunkizilkaya/curbwatch/internal/models"

// CreateReportRequest is the body of POST /api/reports. Any status supplied by
// the client is not part of the contract and is dropped on decode.
type CreateReportRequest struct {
	ReporterEmail string   `json:"reporterEmail" validate:"required,max=254"`
	LicensePlate  string   `json:"licensePlate" validate:"required,max=20"`
	PlateState    string   `json:"plateState" validate:"omitempty,max=10"`
	VehicleMake   string   `json:"vehicleMake" validate:"required,max=100"`
	VehicleModel  string   `json:"vehicleModel" validate:"omitempty,max=100"`
	VehicleColor  string   `json:"vehicleColor" validate:"required,max=50"`
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
	Address       string   `json:"address" validate:"omitempty,max=500"`
	Reason        string   `json:"reason" validate:"required,max=100"`
	Notes         string   `json:"notes" validate:"omitempty,max=2000"`
	PhotoBase64   string   `json:"photoBase64"`
}

type CreateReportResponse struct {
	Success bool           `json:"success"`
	Report  *models.Report `json:"report"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}
