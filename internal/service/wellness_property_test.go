package service

import (
	"context"
	"fmt"
	"slices"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/vcscsvcscs/wellness-companion/internal/analysis"
	"github.com/vcscsvcscs/wellness-companion/internal/repository"
	"github.com/vcscsvcscs/wellness-companion/pkg/model"
	"go.uber.org/zap"
)

// Property: analyzing a report twice leaves the reminder collection with the
// same ids and count as analyzing it once
func TestProperty_AnalyzeIsIdempotent(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	categories := append(analysis.KnownCategories(), "Genome Sequencing", "blood test", "")

	properties.Property("second analysis adds no reminders", prop.ForAll(
		func(reportID string, categoryIdx int) bool {
			ctx := context.Background()
			svc, _ := newTestService(t, repository.NewMemoryStore(zap.NewNop()), Options{
				NewID: func() string { return reportID },
			})

			report, err := svc.AddReport(ctx, model.MedicalReport{
				Name:           "Report",
				ReportCategory: categories[categoryIdx],
				DoctorName:     "Dr. Test",
				ReportDate:     "2024-01-10",
			})
			if err != nil {
				return false
			}

			if _, err := svc.AnalyzeReport(ctx, report.ID); err != nil {
				return false
			}
			once := reminderIDs(svc.AnalysisReminders())

			if _, err := svc.AnalyzeReport(ctx, report.ID); err != nil {
				return false
			}
			twice := reminderIDs(svc.AnalysisReminders())

			return slices.Equal(once, twice) && svc.Reports()[2].Analyzed
		},
		gen.Identifier(),
		gen.IntRange(0, len(categories)-1),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// Property: deleting a report removes exactly the reminders that reference it
func TestProperty_DeleteReportCascades(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("only the deleted report's reminders are removed", prop.ForAll(
		func(owners []int, target int) bool {
			ctx := context.Background()
			store := repository.NewMemoryStore(zap.NewNop())

			reports := make([]model.MedicalReport, 0, 4)
			for i := 1; i <= 4; i++ {
				reports = append(reports, model.MedicalReport{ID: fmt.Sprintf("rep%d", i), Name: "Report"})
			}
			reminders := make([]model.AnalysisReminder, 0, len(owners))
			for i, owner := range owners {
				reportID := fmt.Sprintf("rep%d", owner)
				reminders = append(reminders, model.AnalysisReminder{
					ID:       analysis.ReminderID(reportID, i+1),
					Type:     model.ReminderTypeFollowup,
					Title:    "Follow up",
					ReportID: reportID,
				})
			}
			storeJSON(t, store, KeyReports, reports)
			storeJSON(t, store, KeyAnalysisReminders, reminders)

			svc, _ := newTestService(t, store, Options{})
			targetID := fmt.Sprintf("rep%d", target)
			svc.DeleteReport(ctx, targetID)

			var want []string
			for _, r := range reminders {
				if r.ReportID != targetID {
					want = append(want, r.ID)
				}
			}

			got := svc.AnalysisReminders()
			if len(got) != len(want) {
				return false
			}
			for i, r := range got {
				if r.ID != want[i] || r.ReportID == targetID {
					return false
				}
			}
			return len(svc.Reports()) == 3
		},
		gen.SliceOfN(12, gen.IntRange(1, 4)),
		gen.IntRange(1, 4),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// Property: logging a metric twice on the same day keeps one entry holding
// the last value
func TestProperty_MetricUpsertByDate(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("same-day logs collapse to the latest value", prop.ForAll(
		func(firstSteps, secondSteps, score int) bool {
			ctx := context.Background()
			svc, _ := newTestService(t, repository.NewMemoryStore(zap.NewNop()), Options{})
			today := fixedNow().Format(model.DateLayout)

			if svc.LogActivity(ctx, firstSteps) != nil || svc.LogActivity(ctx, secondSteps) != nil {
				return false
			}
			if svc.LogNutrition(ctx, score) != nil || svc.LogNutrition(ctx, score) != nil {
				return false
			}

			m := svc.Metrics()
			var stepsToday, nutritionToday int
			for _, e := range m.Activity {
				if e.Date == today {
					stepsToday++
				}
			}
			for _, e := range m.Nutrition {
				if e.Date == today {
					nutritionToday++
				}
			}

			last := m.Activity[len(m.Activity)-1]
			return stepsToday == 1 && nutritionToday == 1 &&
				last.Date == today && last.Steps == secondSteps &&
				m.Nutrition[len(m.Nutrition)-1].Score == score
		},
		gen.IntRange(0, 30000),
		gen.IntRange(0, 30000),
		gen.IntRange(0, MaxNutritionScore),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// Property: mutations addressed to unknown ids never change the state
func TestProperty_StaleIDsAreNoOps(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("unknown ids leave the snapshot unchanged", prop.ForAll(
		func(id string) bool {
			ctx := context.Background()
			svc, _ := newTestService(t, repository.NewMemoryStore(zap.NewNop()), Options{})
			before := svc.Snapshot()

			// Seeded ids are short numerics; identifiers start with a letter
			svc.ToggleMedicineTaken(ctx, id)
			svc.ToggleChecklistItem(ctx, id)
			svc.ToggleReminderComplete(ctx, id)
			svc.DeleteReport(ctx, id)
			svc.DeleteAnalysisReminder(ctx, id)

			after := svc.Snapshot()
			return slices.Equal(before.Medicines, after.Medicines) &&
				slices.Equal(before.Checklist, after.Checklist) &&
				slices.Equal(reminderIDs(before.AnalysisReminders), reminderIDs(after.AnalysisReminders)) &&
				len(before.Reports) == len(after.Reports)
		},
		gen.Identifier(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
