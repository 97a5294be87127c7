package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/vcscsvcscs/wellness-companion/internal/audit"
	"github.com/vcscsvcscs/wellness-companion/pkg/model"
	"go.uber.org/zap"
)

func validateDate(value string) error {
	if _, err := time.Parse(model.DateLayout, value); err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD, got %q", ErrInvalidInput, value)
	}
	return nil
}

// AddAppointment appends a new appointment. The draft's ID is ignored.
func (s *WellnessService) AddAppointment(ctx context.Context, draft model.Appointment) (model.Appointment, error) {
	if strings.TrimSpace(draft.DoctorName) == "" {
		return model.Appointment{}, fmt.Errorf("%w: doctor name is required", ErrInvalidInput)
	}
	if err := validateDate(draft.Date); err != nil {
		return model.Appointment{}, err
	}
	if err := validateTimeOfDay(draft.Time); err != nil {
		return model.Appointment{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	apt := draft
	apt.ID = s.newID()

	s.appointments = append(s.appointments, apt)
	s.save(ctx, KeyAppointments, s.appointments)
	s.record(ctx, audit.OperationCreate, audit.ResourceAppointment, apt.ID)

	s.logger.Info("appointment added",
		zap.String("appointment_id", apt.ID),
		zap.String("date", apt.Date),
	)

	return apt, nil
}

// UpdateAppointment applies patch to the appointment with id. It reports
// false without error when the id is unknown.
func (s *WellnessService) UpdateAppointment(ctx context.Context, id string, patch model.AppointmentPatch) (model.Appointment, bool, error) {
	if patch.DoctorName != nil && strings.TrimSpace(*patch.DoctorName) == "" {
		return model.Appointment{}, false, fmt.Errorf("%w: doctor name cannot be empty", ErrInvalidInput)
	}
	if patch.Date != nil {
		if err := validateDate(*patch.Date); err != nil {
			return model.Appointment{}, false, err
		}
	}
	if patch.Time != nil {
		if err := validateTimeOfDay(*patch.Time); err != nil {
			return model.Appointment{}, false, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.appointments {
		if s.appointments[i].ID != id {
			continue
		}

		apt := &s.appointments[i]
		if patch.DoctorName != nil {
			apt.DoctorName = *patch.DoctorName
		}
		if patch.Specialty != nil {
			apt.Specialty = *patch.Specialty
		}
		if patch.Date != nil {
			apt.Date = *patch.Date
		}
		if patch.Time != nil {
			apt.Time = *patch.Time
		}
		if patch.Notes != nil {
			apt.Notes = *patch.Notes
		}

		s.save(ctx, KeyAppointments, s.appointments)
		s.record(ctx, audit.OperationUpdate, audit.ResourceAppointment, id)
		return *apt, true, nil
	}

	s.logger.Debug("update ignored, appointment not found", zap.String("appointment_id", id))
	return model.Appointment{}, false, nil
}

// DeleteAppointment removes an appointment. Unknown ids are ignored.
func (s *WellnessService) DeleteAppointment(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept, removed := removeByID(s.appointments, id, func(a model.Appointment) string { return a.ID })
	if removed == 0 {
		s.logger.Debug("delete ignored, appointment not found", zap.String("appointment_id", id))
		return
	}

	s.appointments = kept
	s.save(ctx, KeyAppointments, s.appointments)
	s.record(ctx, audit.OperationDelete, audit.ResourceAppointment, id)
}
