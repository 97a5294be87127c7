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

const timeOfDayLayout = "15:04"

func validateTimeOfDay(value string) error {
	if value == "" {
		return nil
	}
	if _, err := time.Parse(timeOfDayLayout, value); err != nil {
		return fmt.Errorf("%w: time must be HH:MM, got %q", ErrInvalidInput, value)
	}
	return nil
}

// AddMedicine appends a new medicine. The draft's ID is ignored.
func (s *WellnessService) AddMedicine(ctx context.Context, draft model.Medicine) (model.Medicine, error) {
	if strings.TrimSpace(draft.Name) == "" {
		return model.Medicine{}, fmt.Errorf("%w: medicine name is required", ErrInvalidInput)
	}
	if err := validateTimeOfDay(draft.Time); err != nil {
		return model.Medicine{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	med := draft
	med.ID = s.newID()

	s.medicines = append(s.medicines, med)
	s.save(ctx, KeyMedicines, s.medicines)
	s.record(ctx, audit.OperationCreate, audit.ResourceMedicine, med.ID)

	s.logger.Info("medicine added",
		zap.String("medicine_id", med.ID),
		zap.String("name", med.Name),
	)

	return med, nil
}

// ToggleMedicineTaken flips the taken flag. Unknown ids are ignored.
func (s *WellnessService) ToggleMedicineTaken(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.medicines {
		if s.medicines[i].ID == id {
			s.medicines[i].Taken = !s.medicines[i].Taken
			s.save(ctx, KeyMedicines, s.medicines)
			s.record(ctx, audit.OperationUpdate, audit.ResourceMedicine, id)
			return
		}
	}

	s.logger.Debug("toggle ignored, medicine not found", zap.String("medicine_id", id))
}

// UpdateMedicine applies patch to the medicine with id. It reports false
// without error when the id is unknown.
func (s *WellnessService) UpdateMedicine(ctx context.Context, id string, patch model.MedicinePatch) (model.Medicine, bool, error) {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return model.Medicine{}, false, fmt.Errorf("%w: medicine name cannot be empty", ErrInvalidInput)
	}
	if patch.Time != nil {
		if err := validateTimeOfDay(*patch.Time); err != nil {
			return model.Medicine{}, false, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.medicines {
		if s.medicines[i].ID != id {
			continue
		}

		med := &s.medicines[i]
		if patch.Name != nil {
			med.Name = *patch.Name
		}
		if patch.Dosage != nil {
			med.Dosage = *patch.Dosage
		}
		if patch.Time != nil {
			med.Time = *patch.Time
		}
		if patch.Frequency != nil {
			med.Frequency = *patch.Frequency
		}

		s.save(ctx, KeyMedicines, s.medicines)
		s.record(ctx, audit.OperationUpdate, audit.ResourceMedicine, id)
		return *med, true, nil
	}

	s.logger.Debug("update ignored, medicine not found", zap.String("medicine_id", id))
	return model.Medicine{}, false, nil
}

// DeleteMedicine removes a medicine. Unknown ids are ignored.
func (s *WellnessService) DeleteMedicine(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept, removed := removeByID(s.medicines, id, func(m model.Medicine) string { return m.ID })
	if removed == 0 {
		s.logger.Debug("delete ignored, medicine not found", zap.String("medicine_id", id))
		return
	}

	s.medicines = kept
	s.save(ctx, KeyMedicines, s.medicines)
	s.record(ctx, audit.OperationDelete, audit.ResourceMedicine, id)
}
