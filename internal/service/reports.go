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

// AddReport appends a new, not yet analyzed report uploaded today. The
// category, doctor and report date are interpolated into the analysis, so
// all three are required. The draft's ID, UploadDate, Analyzed and Analysis
// fields are ignored.
func (s *WellnessService) AddReport(ctx context.Context, draft model.MedicalReport) (model.MedicalReport, error) {
	if strings.TrimSpace(draft.Name) == "" {
		return model.MedicalReport{}, fmt.Errorf("%w: report name is required", ErrInvalidInput)
	}
	if strings.TrimSpace(draft.ReportCategory) == "" {
		return model.MedicalReport{}, fmt.Errorf("%w: report category is required", ErrInvalidInput)
	}
	if strings.TrimSpace(draft.DoctorName) == "" {
		return model.MedicalReport{}, fmt.Errorf("%w: doctor name is required", ErrInvalidInput)
	}
	if err := validateDate(draft.ReportDate); err != nil {
		return model.MedicalReport{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	report := draft
	report.ID = s.newID()
	report.UploadDate = s.today()
	report.Analyzed = false
	report.Analysis = nil

	s.reports = append(s.reports, report)
	s.save(ctx, KeyReports, s.reports)
	s.record(ctx, audit.OperationCreate, audit.ResourceReport, report.ID)

	s.logger.Info("report added",
		zap.String("report_id", report.ID),
		zap.String("category", report.ReportCategory),
	)

	return report.Clone(), nil
}

// DeleteReport removes a report together with every analysis reminder that
// references it. Unknown ids are ignored.
func (s *WellnessService) DeleteReport(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reports, removedReports := removeByID(s.reports, id, func(r model.MedicalReport) string { return r.ID })
	reminders, removedReminders := removeByID(s.reminders, id, func(r model.AnalysisReminder) string { return r.ReportID })

	if removedReports == 0 && removedReminders == 0 {
		s.logger.Debug("delete ignored, report not found", zap.String("report_id", id))
		return
	}

	if removedReports > 0 {
		s.reports = reports
		s.save(ctx, KeyReports, s.reports)
		s.record(ctx, audit.OperationDelete, audit.ResourceReport, id)
	}
	if removedReminders > 0 {
		s.reminders = reminders
		s.save(ctx, KeyAnalysisReminders, s.reminders)
	}

	s.logger.Info("report deleted",
		zap.String("report_id", id),
		zap.Int("reminders_removed", removedReminders),
	)
}

// AnalyzeReport runs the analysis engine on a report after the configured
// processing delay, merges the generated reminders that are not already
// present and attaches the analysis to the report.
//
// The delay cannot be cancelled; once started the merge always runs. A
// second call for the same report while one is pending fails with
// ErrAnalysisInProgress. Analyzing a report again regenerates the same
// reminder ids, so the reminder collection is left unchanged.
func (s *WellnessService) AnalyzeReport(ctx context.Context, id string) (model.ReportAnalysis, error) {
	s.mu.Lock()
	if _, busy := s.inflight[id]; busy {
		s.mu.Unlock()
		return model.ReportAnalysis{}, fmt.Errorf("%w: %s", ErrAnalysisInProgress, id)
	}
	if s.findReport(id) < 0 {
		s.mu.Unlock()
		s.logger.Warn("analysis requested for unknown report", zap.String("report_id", id))
		return model.ReportAnalysis{}, fmt.Errorf("%w: %s", ErrReportNotFound, id)
	}
	s.inflight[id] = struct{}{}
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.inflight, id)
		s.mu.Unlock()
	}()

	if s.analysisDelay > 0 {
		time.Sleep(s.analysisDelay)
	}

	// The merge must finish even if the caller went away during the delay
	ctx = context.WithoutCancel(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.findReport(id)
	if idx < 0 {
		s.logger.Warn("report deleted during analysis", zap.String("report_id", id))
		return model.ReportAnalysis{}, fmt.Errorf("%w: %s", ErrReportNotFound, id)
	}

	analysis := s.analyzer.Analyze(s.reports[idx].Clone(), s.now())

	var added int
	s.reminders, added = mergeReminders(s.reminders, analysis.Reminders)

	s.reports[idx].Analyzed = true
	s.reports[idx].Analysis = analysis.Clone()

	s.save(ctx, KeyAnalysisReminders, s.reminders)
	s.save(ctx, KeyReports, s.reports)
	s.record(ctx, audit.OperationUpdate, audit.ResourceReport, id)

	s.logger.Info("report analyzed",
		zap.String("report_id", id),
		zap.String("category", s.reports[idx].ReportCategory),
		zap.Int("reminders_generated", len(analysis.Reminders)),
		zap.Int("reminders_added", added),
	)

	return *analysis.Clone(), nil
}

func (s *WellnessService) findReport(id string) int {
	for i := range s.reports {
		if s.reports[i].ID == id {
			return i
		}
	}
	return -1
}

// mergeReminders appends the candidates whose id is not yet present in
// existing, in candidate order, and returns the new slice with the number
// of reminders added. Duplicate ids within candidates are added once.
func mergeReminders(existing, candidates []model.AnalysisReminder) ([]model.AnalysisReminder, int) {
	seen := make(map[string]struct{}, len(existing)+len(candidates))
	for _, r := range existing {
		seen[r.ID] = struct{}{}
	}

	added := 0
	for _, c := range candidates {
		if _, ok := seen[c.ID]; ok {
			continue
		}
		seen[c.ID] = struct{}{}
		existing = append(existing, c.Clone())
		added++
	}

	return existing, added
}

// ToggleReminderComplete flips the completed flag of an analysis reminder.
// Unknown ids are ignored.
func (s *WellnessService) ToggleReminderComplete(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.reminders {
		if s.reminders[i].ID == id {
			s.reminders[i].Completed = !s.reminders[i].Completed
			s.save(ctx, KeyAnalysisReminders, s.reminders)
			s.record(ctx, audit.OperationUpdate, audit.ResourceReminder, id)
			return
		}
	}

	s.logger.Debug("toggle ignored, reminder not found", zap.String("reminder_id", id))
}

// DeleteAnalysisReminder removes a single reminder. Unknown ids are ignored.
// The reminder may be regenerated by a later analysis of its report.
func (s *WellnessService) DeleteAnalysisReminder(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept, removed := removeByID(s.reminders, id, func(r model.AnalysisReminder) string { return r.ID })
	if removed == 0 {
		s.logger.Debug("delete ignored, reminder not found", zap.String("reminder_id", id))
		return
	}

	s.reminders = kept
	s.save(ctx, KeyAnalysisReminders, s.reminders)
	s.record(ctx, audit.OperationDelete, audit.ResourceReminder, id)
}
