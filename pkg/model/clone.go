package model

import "slices"

// Clone returns a deep copy of the reminder
func (r AnalysisReminder) Clone() AnalysisReminder {
	if r.DueDate != nil {
		due := *r.DueDate
		r.DueDate = &due
	}
	return r
}

// Clone returns a deep copy of the analysis
func (a *ReportAnalysis) Clone() *ReportAnalysis {
	if a == nil {
		return nil
	}
	out := &ReportAnalysis{
		Summary:        a.Summary,
		KeyFindings:    slices.Clone(a.KeyFindings),
		NormalFindings: slices.Clone(a.NormalFindings),
		Concerns:       slices.Clone(a.Concerns),
		NextSteps:      slices.Clone(a.NextSteps),
		Reminders:      CloneReminders(a.Reminders),
	}
	return out
}

// Clone returns a deep copy of the report
func (r MedicalReport) Clone() MedicalReport {
	r.Analysis = r.Analysis.Clone()
	return r
}

// Clone returns a deep copy of the metrics
func (m WellnessMetrics) Clone() WellnessMetrics {
	return WellnessMetrics{
		Mood:      slices.Clone(m.Mood),
		Sleep:     slices.Clone(m.Sleep),
		Nutrition: slices.Clone(m.Nutrition),
		Activity:  slices.Clone(m.Activity),
	}
}

// CloneReminders deep-copies a reminder slice, preserving nil
func CloneReminders(in []AnalysisReminder) []AnalysisReminder {
	if in == nil {
		return nil
	}
	out := make([]AnalysisReminder, len(in))
	for i := range in {
		out[i] = in[i].Clone()
	}
	return out
}

// CloneReports deep-copies a report slice, preserving nil
func CloneReports(in []MedicalReport) []MedicalReport {
	if in == nil {
		return nil
	}
	out := make([]MedicalReport, len(in))
	for i := range in {
		out[i] = in[i].Clone()
	}
	return out
}
