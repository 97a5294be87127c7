// Package insights derives read-only figures from a store snapshot. Nothing
// computed here is persisted.
package insights

import (
	"time"

	"github.com/vcscsvcscs/wellness-companion/pkg/model"
)

// Averages are the arithmetic means of the stored metric series. An empty
// series averages to 0.
type Averages struct {
	Mood      float64 `json:"mood"`
	Sleep     float64 `json:"sleep"`
	Nutrition float64 `json:"nutrition"`
	Steps     float64 `json:"steps"`
}

// Insights summarises the state of the store at a point in time
type Insights struct {
	ChecklistCompleted   int                      `json:"checklistCompleted"`
	ChecklistTotal       int                      `json:"checklistTotal"`
	CompletionRatio      float64                  `json:"completionRatio"`
	Averages             Averages                 `json:"averages"`
	UpcomingAppointments []model.Appointment      `json:"upcomingAppointments"`
	PastAppointments     []model.Appointment      `json:"pastAppointments"`
	PendingMedicines     []model.Medicine         `json:"pendingMedicines"`
	PendingReminders     []model.AnalysisReminder `json:"pendingReminders"`
	AnalyzedReports      int                      `json:"analyzedReports"`
	TotalReports         int                      `json:"totalReports"`
}

// Compute derives Insights from snap as of now
func Compute(snap model.Snapshot, now time.Time) Insights {
	completed := CompletedCount(snap.Checklist)

	upcoming, past := PartitionAppointments(snap.Appointments, now)

	in := Insights{
		ChecklistCompleted:   completed,
		ChecklistTotal:       len(snap.Checklist),
		CompletionRatio:      CompletionRatio(snap.Checklist),
		Averages:             ComputeAverages(snap.Metrics),
		UpcomingAppointments: upcoming,
		PastAppointments:     past,
		PendingMedicines:     PendingMedicines(snap.Medicines),
		PendingReminders:     []model.AnalysisReminder{},
		TotalReports:         len(snap.Reports),
	}

	for _, r := range snap.AnalysisReminders {
		if !r.Completed {
			in.PendingReminders = append(in.PendingReminders, r.Clone())
		}
	}
	for _, r := range snap.Reports {
		if r.Analyzed {
			in.AnalyzedReports++
		}
	}

	return in
}

// CompletedCount returns how many checklist items are completed
func CompletedCount(items []model.ChecklistItem) int {
	n := 0
	for _, item := range items {
		if item.Completed {
			n++
		}
	}
	return n
}

// CompletionRatio is completed / total, or 0 for an empty checklist
func CompletionRatio(items []model.ChecklistItem) float64 {
	if len(items) == 0 {
		return 0
	}
	return float64(CompletedCount(items)) / float64(len(items))
}

// ComputeAverages averages each metric series over its stored entries
func ComputeAverages(m model.WellnessMetrics) Averages {
	var a Averages

	if n := len(m.Mood); n > 0 {
		sum := 0
		for _, e := range m.Mood {
			sum += e.Value
		}
		a.Mood = float64(sum) / float64(n)
	}
	if n := len(m.Sleep); n > 0 {
		sum := 0.0
		for _, e := range m.Sleep {
			sum += e.Hours
		}
		a.Sleep = sum / float64(n)
	}
	if n := len(m.Nutrition); n > 0 {
		sum := 0
		for _, e := range m.Nutrition {
			sum += e.Score
		}
		a.Nutrition = float64(sum) / float64(n)
	}
	if n := len(m.Activity); n > 0 {
		sum := 0
		for _, e := range m.Activity {
			sum += e.Steps
		}
		a.Steps = float64(sum) / float64(n)
	}

	return a
}

// IsUpcoming reports whether the appointment falls on or after the start of
// now's calendar day. The time of day is ignored and a date that cannot be
// parsed counts as past.
func IsUpcoming(apt model.Appointment, now time.Time) bool {
	date, err := time.ParseInLocation(model.DateLayout, apt.Date, now.Location())
	if err != nil {
		return false
	}
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return !date.Before(startOfDay)
}

// PartitionAppointments splits appointments into upcoming and past,
// preserving their order
func PartitionAppointments(apts []model.Appointment, now time.Time) (upcoming, past []model.Appointment) {
	upcoming = []model.Appointment{}
	past = []model.Appointment{}
	for _, apt := range apts {
		if IsUpcoming(apt, now) {
			upcoming = append(upcoming, apt)
		} else {
			past = append(past, apt)
		}
	}
	return upcoming, past
}

// PendingMedicines returns the medicines not yet marked taken
func PendingMedicines(meds []model.Medicine) []model.Medicine {
	out := []model.Medicine{}
	for _, m := range meds {
		if !m.Taken {
			out = append(out, m)
		}
	}
	return out
}
