package pdf

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vcscsvcscs/wellness-companion/internal/insights"
	"github.com/vcscsvcscs/wellness-companion/pkg/model"
	"go.uber.org/zap"
)

func sampleSnapshot() model.Snapshot {
	due := "2024-02-10"
	return model.Snapshot{
		Checklist: []model.ChecklistItem{
			{ID: "1", Label: "Drink 8 glasses of water", Completed: true, Category: model.ChecklistCategoryHealth},
			{ID: "2", Label: "Talk to baby", Category: model.ChecklistCategoryBaby},
		},
		Medicines: []model.Medicine{
			{ID: "1", Name: "Prenatal Vitamins", Dosage: "1 tablet", Time: "08:00", Frequency: "Daily", Taken: true},
			{ID: "2", Name: "Iron Supplement", Dosage: "1 tablet", Time: "14:00", Frequency: "Daily"},
		},
		Appointments: []model.Appointment{
			{ID: "1", DoctorName: "Dr. Priya Sharma", Specialty: "Gynecologist", Date: "2024-02-01", Time: "10:00", Notes: "Bring previous reports"},
		},
		Reports: []model.MedicalReport{
			{
				ID: "1", Name: "Complete Blood Count", ReportCategory: model.ReportCategoryBloodTest,
				DoctorName: "Dr. Priya Sharma", ReportDate: "2024-01-10", Analyzed: true,
				Analysis: &model.ReportAnalysis{
					Summary:   "Your blood work shows generally healthy results.",
					Concerns:  []string{"Slightly low iron levels"},
					NextSteps: []string{"Continue iron supplements"},
				},
			},
			{ID: "2", Name: "Ultrasound Scan", ReportCategory: model.ReportCategoryUltrasound, ReportDate: "2024-01-15"},
		},
		AnalysisReminders: []model.AnalysisReminder{
			{ID: "1-r1", Type: model.ReminderTypeFollowup, Title: "Follow-up appointment", DueDate: &due, ReportID: "1"},
			{ID: "1-r2", Type: model.ReminderTypeLifestyle, Title: "Eat iron-rich foods", ReportID: "1"},
		},
		Metrics: model.WellnessMetrics{
			Mood:      []model.MoodEntry{{Date: "2024-01-20", Value: 4, Emoji: "😊"}},
			Sleep:     []model.SleepEntry{{Date: "2024-01-20", Hours: 7.5}},
			Nutrition: []model.NutritionEntry{{Date: "2024-01-20", Score: 72}},
			Activity:  []model.ActivityEntry{{Date: "2024-01-20", Steps: 4200}},
		},
	}
}

func TestPDFGenerator_Generate_Success(t *testing.T) {
	// Arrange
	generator := NewPDFGenerator(zap.NewNop())
	now := time.Date(2024, 1, 28, 9, 0, 0, 0, time.UTC)
	snap := sampleSnapshot()

	data := &SummaryData{
		Profile:     model.Profile{Name: "Asma", PregnancyStage: "Second Trimester"},
		Snapshot:    snap,
		Insights:    insights.Compute(snap, now),
		GeneratedAt: now,
	}

	// Act
	pdfBytes, err := generator.Generate(data)

	// Assert
	require.NoError(t, err)
	assert.Greater(t, len(pdfBytes), 0, "PDF should have content")
	assert.Equal(t, "%PDF", string(pdfBytes[:4]), "Should be a valid PDF file")
}

func TestPDFGenerator_Generate_EmptyData(t *testing.T) {
	generator := NewPDFGenerator(zap.NewNop())

	data := &SummaryData{
		Profile:     model.Profile{Name: "Asma"},
		Insights:    insights.Compute(model.Snapshot{}, time.Now()),
		GeneratedAt: time.Now(),
	}

	pdfBytes, err := generator.Generate(data)

	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(pdfBytes[:4]), "PDF should render even with empty data")
}

func TestPDFGenerator_Generate_NilData(t *testing.T) {
	generator := NewPDFGenerator(zap.NewNop())

	pdfBytes, err := generator.Generate(nil)

	assert.Error(t, err)
	assert.Nil(t, pdfBytes)
}

func TestPDFGenerator_Generate_ManyReportsSpansPages(t *testing.T) {
	generator := NewPDFGenerator(zap.NewNop())
	now := time.Now()

	var snap model.Snapshot
	for i := 0; i < 60; i++ {
		snap.Reports = append(snap.Reports, model.MedicalReport{
			ID:             "r",
			Name:           "Report " + strings.Repeat("x", i%10),
			ReportCategory: model.ReportCategoryUrineTest,
			ReportDate:     "2024-01-01",
			Analyzed:       true,
			Analysis: &model.ReportAnalysis{
				Summary:   strings.Repeat("Long narrative text. ", 20),
				NextSteps: []string{"Continue hydration"},
			},
		})
	}

	single, err := generator.Generate(&SummaryData{Snapshot: model.Snapshot{}, GeneratedAt: now})
	require.NoError(t, err)

	many, err := generator.Generate(&SummaryData{
		Snapshot:    snap,
		Insights:    insights.Compute(snap, now),
		GeneratedAt: now,
	})
	require.NoError(t, err)

	assert.Greater(t, len(many), len(single))
}
