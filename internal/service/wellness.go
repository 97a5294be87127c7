package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vcscsvcscs/wellness-companion/internal/audit"
	"github.com/vcscsvcscs/wellness-companion/internal/repository"
	"github.com/vcscsvcscs/wellness-companion/pkg/model"
	"go.uber.org/zap"
)

// DefaultAnalysisDelay is the simulated processing time before an analysis
// is merged into the store
const DefaultAnalysisDelay = 2 * time.Second

// Analyzer produces the analysis for a report
type Analyzer interface {
	Analyze(report model.MedicalReport, now time.Time) model.ReportAnalysis
}

// Options tune a WellnessService. Zero values select the current UTC time,
// UUIDv7 ids and no analysis delay.
type Options struct {
	AnalysisDelay time.Duration
	Now           func() time.Time
	NewID         func() string
}

// WellnessService owns the six wellness collections and the user
// preferences. Every mutation runs under one mutex and is written through
// to the backing store before it returns. Write failures are logged and the
// in-memory state stays authoritative.
type WellnessService struct {
	store    repository.KeyValueStore
	analyzer Analyzer
	audit    *audit.Logger
	logger   *zap.Logger

	analysisDelay time.Duration
	now           func() time.Time
	newID         func() string

	mu           sync.Mutex
	checklist    []model.ChecklistItem
	medicines    []model.Medicine
	appointments []model.Appointment
	reports      []model.MedicalReport
	reminders    []model.AnalysisReminder
	metrics      model.WellnessMetrics
	prefs        model.Preferences
	inflight     map[string]struct{}
}

// NewWellnessService creates a new WellnessService with empty collections.
// Call Load to read the persisted state.
func NewWellnessService(
	store repository.KeyValueStore,
	analyzer Analyzer,
	auditLogger *audit.Logger,
	logger *zap.Logger,
	opts Options,
) *WellnessService {
	s := &WellnessService{
		store:         store,
		analyzer:      analyzer,
		audit:         auditLogger,
		logger:        logger,
		analysisDelay: opts.AnalysisDelay,
		now:           opts.Now,
		newID:         opts.NewID,
		inflight:      make(map[string]struct{}),
		prefs: model.Preferences{
			EmailInsightsEnabled:        true,
			MedicineRemindersEnabled:    true,
			AppointmentRemindersEnabled: true,
		},
	}

	if s.now == nil {
		s.now = utcNow
	}
	if s.newID == nil {
		s.newID = newUUIDv7
	}
	if s.analysisDelay < 0 {
		s.analysisDelay = 0
	}

	s.resetCollections()
	return s
}

// utcNow keeps ISO days (today, due dates, seeds) on UTC regardless of the
// host timezone
func utcNow() time.Time {
	return time.Now().UTC()
}

func newUUIDv7() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func (s *WellnessService) resetCollections() {
	s.checklist = []model.ChecklistItem{}
	s.medicines = []model.Medicine{}
	s.appointments = []model.Appointment{}
	s.reports = []model.MedicalReport{}
	s.reminders = []model.AnalysisReminder{}
	s.metrics = emptyMetrics()
}

func emptyMetrics() model.WellnessMetrics {
	return model.WellnessMetrics{
		Mood:      []model.MoodEntry{},
		Sleep:     []model.SleepEntry{},
		Nutrition: []model.NutritionEntry{},
		Activity:  []model.ActivityEntry{},
	}
}

// Load reads every collection from the backing store. A key that is
// missing or holds malformed JSON is replaced by its seed data, which is
// then written through. A key that cannot be read is seeded in memory only
// so the stored value survives a transient or decryption failure. Load
// never fails.
func (s *WellnessService) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()

	s.checklist = loadCollection(ctx, s, KeyChecklist, func() []model.ChecklistItem { return seedChecklist(now) })
	s.medicines = loadCollection(ctx, s, KeyMedicines, seedMedicines)
	s.appointments = loadCollection(ctx, s, KeyAppointments, seedAppointments)
	s.reports = loadCollection(ctx, s, KeyReports, seedReports)
	s.reminders = loadCollection(ctx, s, KeyAnalysisReminders, seedReminders)
	s.metrics = loadCollection(ctx, s, KeyMetrics, func() model.WellnessMetrics { return seedMetrics(now) })

	// "null" decodes to a nil slice; keep the JSON shape stable as []
	if s.checklist == nil {
		s.checklist = []model.ChecklistItem{}
	}
	if s.medicines == nil {
		s.medicines = []model.Medicine{}
	}
	if s.appointments == nil {
		s.appointments = []model.Appointment{}
	}
	if s.reports == nil {
		s.reports = []model.MedicalReport{}
	}
	if s.reminders == nil {
		s.reminders = []model.AnalysisReminder{}
	}
	s.metrics = normalizeMetrics(s.metrics)

	s.prefs = model.Preferences{
		UserEmail:                   s.readScalar(ctx, KeyUserEmail),
		EmailInsightsEnabled:        s.readScalar(ctx, KeyEmailInsights) != "false",
		MedicineRemindersEnabled:    s.readScalar(ctx, KeyMedicineReminders) != "false",
		AppointmentRemindersEnabled: s.readScalar(ctx, KeyAppointmentReminders) != "false",
	}

	s.logger.Info("wellness state loaded",
		zap.Int("checklist", len(s.checklist)),
		zap.Int("medicines", len(s.medicines)),
		zap.Int("appointments", len(s.appointments)),
		zap.Int("reports", len(s.reports)),
		zap.Int("reminders", len(s.reminders)),
	)
}

func loadCollection[T any](ctx context.Context, s *WellnessService, key string, seed func() T) T {
	raw, found, err := s.store.Get(ctx, key)
	switch {
	case err != nil:
		// Never written back: the stored value may still be intact
		s.logger.Warn("failed to read stored collection, using seed data in memory",
			zap.String("key", key),
			zap.Error(err),
		)
		return seed()
	case found:
		var v T
		err := json.Unmarshal([]byte(raw), &v)
		if err == nil {
			return v
		}
		s.logger.Warn("stored collection is malformed, using seed data",
			zap.String("key", key),
			zap.Error(err),
		)
	}

	v := seed()
	s.save(ctx, key, v)
	return v
}

func normalizeMetrics(m model.WellnessMetrics) model.WellnessMetrics {
	if m.Mood == nil {
		m.Mood = []model.MoodEntry{}
	}
	if m.Sleep == nil {
		m.Sleep = []model.SleepEntry{}
	}
	if m.Nutrition == nil {
		m.Nutrition = []model.NutritionEntry{}
	}
	if m.Activity == nil {
		m.Activity = []model.ActivityEntry{}
	}
	return m
}

func (s *WellnessService) readScalar(ctx context.Context, key string) string {
	value, _, err := s.store.Get(ctx, key)
	if err != nil {
		s.logger.Warn("failed to read stored preference",
			zap.String("key", key),
			zap.Error(err),
		)
		return ""
	}
	return value
}

// save serializes v and writes it under key. This is the single persistence
// path for collections; failures are logged and not retried.
func (s *WellnessService) save(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.logger.Error("failed to encode collection",
			zap.String("key", key),
			zap.Error(err),
		)
		return
	}

	s.saveScalar(ctx, key, string(data))
}

func (s *WellnessService) saveScalar(ctx context.Context, key, value string) {
	if err := s.store.Set(ctx, key, value); err != nil {
		s.logger.Warn("failed to persist value, keeping in-memory state",
			zap.String("key", key),
			zap.Error(err),
		)
	}
}

func (s *WellnessService) record(ctx context.Context, op audit.OperationType, resource audit.ResourceType, id string) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Log(ctx, audit.Entry{
		OperationType: op,
		ResourceType:  resource,
		ResourceID:    id,
		Timestamp:     s.now(),
	}); err != nil {
		s.logger.Warn("failed to record audit entry",
			zap.Error(err),
			zap.String("resource_id", id),
		)
	}
}

// Now returns the service clock's current time
func (s *WellnessService) Now() time.Time {
	return s.now()
}

func (s *WellnessService) today() string {
	return s.now().Format(model.DateLayout)
}

// Snapshot returns a deep copy of every collection and the preferences
func (s *WellnessService) Snapshot() model.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return model.Snapshot{
		Checklist:         slices.Clone(s.checklist),
		Medicines:         slices.Clone(s.medicines),
		Appointments:      slices.Clone(s.appointments),
		Reports:           model.CloneReports(s.reports),
		AnalysisReminders: model.CloneReminders(s.reminders),
		Metrics:           s.metrics.Clone(),
		Preferences:       s.prefs,
	}
}

// Checklist returns a copy of the checklist
func (s *WellnessService) Checklist() []model.ChecklistItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.checklist)
}

// Medicines returns a copy of the medicines
func (s *WellnessService) Medicines() []model.Medicine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.medicines)
}

// Appointments returns a copy of the appointments
func (s *WellnessService) Appointments() []model.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.appointments)
}

// Reports returns a deep copy of the reports
func (s *WellnessService) Reports() []model.MedicalReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return model.CloneReports(s.reports)
}

// AnalysisReminders returns a deep copy of the analysis reminders
func (s *WellnessService) AnalysisReminders() []model.AnalysisReminder {
	s.mu.Lock()
	defer s.mu.Unlock()
	return model.CloneReminders(s.reminders)
}

// Metrics returns a copy of the wellness metrics
func (s *WellnessService) Metrics() model.WellnessMetrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.metrics.Clone()
}

// Preferences returns the current preferences
func (s *WellnessService) Preferences() model.Preferences {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prefs
}

// SetUserEmail stores the email used for notifications. An empty value
// clears it; anything else must contain "@".
func (s *WellnessService) SetUserEmail(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email != "" && !strings.Contains(email, "@") {
		return fmt.Errorf("%w: invalid email address %q", ErrInvalidInput, email)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.prefs.UserEmail = email
	s.saveScalar(ctx, KeyUserEmail, email)
	s.record(ctx, audit.OperationUpdate, audit.ResourcePreferences, KeyUserEmail)
	return nil
}

// SetEmailInsightsEnabled toggles the weekly insights email
func (s *WellnessService) SetEmailInsightsEnabled(ctx context.Context, enabled bool) {
	s.setFlag(ctx, KeyEmailInsights, &s.prefs.EmailInsightsEnabled, enabled)
}

// SetMedicineRemindersEnabled toggles medicine reminders
func (s *WellnessService) SetMedicineRemindersEnabled(ctx context.Context, enabled bool) {
	s.setFlag(ctx, KeyMedicineReminders, &s.prefs.MedicineRemindersEnabled, enabled)
}

// SetAppointmentRemindersEnabled toggles appointment reminders
func (s *WellnessService) SetAppointmentRemindersEnabled(ctx context.Context, enabled bool) {
	s.setFlag(ctx, KeyAppointmentReminders, &s.prefs.AppointmentRemindersEnabled, enabled)
}

func (s *WellnessService) setFlag(ctx context.Context, key string, field *bool, enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	*field = enabled
	s.saveScalar(ctx, key, strconv.FormatBool(enabled))
	s.record(ctx, audit.OperationUpdate, audit.ResourcePreferences, key)
}

// Erase deletes every key from the backing store and empties the
// in-memory collections. Preferences return to their defaults.
func (s *WellnessService) Erase(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var errs []error
	for _, key := range AllKeys() {
		if err := s.store.Delete(ctx, key); err != nil {
			s.logger.Error("failed to delete stored key",
				zap.String("key", key),
				zap.Error(err),
			)
			errs = append(errs, fmt.Errorf("key %s: %w", key, err))
		}
	}

	s.resetCollections()
	s.prefs = model.Preferences{
		EmailInsightsEnabled:        true,
		MedicineRemindersEnabled:    true,
		AppointmentRemindersEnabled: true,
	}

	s.record(ctx, audit.OperationDelete, audit.ResourceAllData, "*")

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("failed to erase stored data: %w", err)
	}
	return nil
}
