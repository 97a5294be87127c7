package handler

import (
	"github.com/oapi-codegen/runtime/types"
	"github.com/vcscsvcscs/wellness-companion/pkg/model"
)

// ChecklistItemRequest is the body of POST /checklist
type ChecklistItemRequest struct {
	Label     string                  `json:"label" binding:"required"`
	Category  model.ChecklistCategory `json:"category" binding:"required"`
	Completed bool                    `json:"completed"`
}

// MedicineRequest is the body of POST /medicines
type MedicineRequest struct {
	Name      string `json:"name" binding:"required"`
	Dosage    string `json:"dosage"`
	Time      string `json:"time" binding:"required"`
	Frequency string `json:"frequency"`
}

// AppointmentRequest is the body of POST /appointments
type AppointmentRequest struct {
	DoctorName string      `json:"doctorName" binding:"required"`
	Specialty  string      `json:"specialty"`
	Date       *types.Date `json:"date"`
	Time       string      `json:"time" binding:"required"`
	Notes      string      `json:"notes"`
}

// AppointmentPatchRequest is the body of PATCH /appointments/:id
type AppointmentPatchRequest struct {
	DoctorName *string     `json:"doctorName"`
	Specialty  *string     `json:"specialty"`
	Date       *types.Date `json:"date"`
	Time       *string     `json:"time"`
	Notes      *string     `json:"notes"`
}

// ReportRequest is the body of POST /reports
type ReportRequest struct {
	Name           string      `json:"name" binding:"required"`
	Type           string      `json:"type"`
	ReportCategory string      `json:"reportCategory" binding:"required"`
	DoctorName     string      `json:"doctorName" binding:"required"`
	ReportDate     *types.Date `json:"reportDate" binding:"required"`
	FileURL        string      `json:"fileUrl"`
}

// MoodRequest is the body of POST /metrics/mood
type MoodRequest struct {
	Value int    `json:"value"`
	Emoji string `json:"emoji"`
}

// SleepRequest is the body of POST /metrics/sleep
type SleepRequest struct {
	Hours float64 `json:"hours"`
}

// NutritionRequest is the body of POST /metrics/nutrition
type NutritionRequest struct {
	Score int `json:"score"`
}

// ActivityRequest is the body of POST /metrics/activity
type ActivityRequest struct {
	Steps int `json:"steps"`
}

// PreferencesRequest is the body of PUT /preferences. Absent fields are left
// unchanged.
type PreferencesRequest struct {
	UserEmail                   *string `json:"userEmail"`
	EmailInsightsEnabled        *bool   `json:"emailInsightsEnabled"`
	MedicineRemindersEnabled    *bool   `json:"medicineRemindersEnabled"`
	AppointmentRemindersEnabled *bool   `json:"appointmentRemindersEnabled"`
}

// NotificationResponse reports whether a notification email went out
type NotificationResponse struct {
	Sent bool `json:"sent"`
}

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status  string `json:"status"`
	Storage string `json:"storage"`
	Service string `json:"service"`
	Version string `json:"version"`
	Error   string `json:"error,omitempty"`
}
