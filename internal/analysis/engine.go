// Package analysis turns a medical report into a narrative analysis and a
// set of follow-up reminders. Output is a pure function of the report and
// the current day; no external inference is involved.
package analysis

import (
	"fmt"
	"time"

	"github.com/vcscsvcscs/wellness-companion/pkg/model"
)

// Engine selects an analysis template by report category
type Engine struct{}

// NewEngine creates a new analysis engine
func NewEngine() *Engine {
	return &Engine{}
}

// ReminderID returns the deterministic id of the seq-th reminder generated
// for reportID. Sequences start at 1.
func ReminderID(reportID string, seq int) string {
	return fmt.Sprintf("%s-r%d", reportID, seq)
}

// KnownCategories lists the categories with a dedicated template
func KnownCategories() []string {
	return []string{
		model.ReportCategoryBloodTest,
		model.ReportCategoryUltrasound,
		model.ReportCategoryUrineTest,
	}
}

// reminderDraft is a template reminder before ids are assigned.
// dueInDays < 0 means no due date.
type reminderDraft struct {
	kind        model.ReminderType
	title       string
	description string
	dueInDays   int
}

const noDueDate = -1

// Analyze produces the analysis for report. Category matching is exact:
// "blood test" or " Blood Test" fall through to the default template.
func (e *Engine) Analyze(report model.MedicalReport, now time.Time) model.ReportAnalysis {
	var (
		analysis model.ReportAnalysis
		drafts   []reminderDraft
	)

	switch report.ReportCategory {
	case model.ReportCategoryBloodTest:
		analysis, drafts = bloodTest(report)
	case model.ReportCategoryUltrasound:
		analysis, drafts = ultrasound(report)
	case model.ReportCategoryUrineTest:
		analysis, drafts = urineTest(report)
	default:
		analysis, drafts = general(report)
	}

	analysis.Reminders = make([]model.AnalysisReminder, 0, len(drafts))
	for i, d := range drafts {
		reminder := model.AnalysisReminder{
			ID:          ReminderID(report.ID, i+1),
			Type:        d.kind,
			Title:       d.title,
			Description: d.description,
			Completed:   false,
			ReportID:    report.ID,
		}
		if d.dueInDays >= 0 {
			due := now.AddDate(0, 0, d.dueInDays).Format(model.DateLayout)
			reminder.DueDate = &due
		}
		analysis.Reminders = append(analysis.Reminders, reminder)
	}

	return analysis
}

func bloodTest(report model.MedicalReport) (model.ReportAnalysis, []reminderDraft) {
	return model.ReportAnalysis{
			Summary: fmt.Sprintf("Your blood test results from %s show that most of your values are within healthy ranges for your pregnancy stage. "+
				"Your hemoglobin level indicates good iron levels, which is wonderful for both you and your baby. "+
				"The doctor %s will discuss any specific concerns during your next visit.", report.ReportDate, report.DoctorName),
			KeyFindings: []string{
				"Hemoglobin: 12.5 g/dL - Good for pregnancy",
				"Blood Sugar (Fasting): 92 mg/dL - Normal range",
				"Thyroid (TSH): 2.3 mIU/L - Within healthy limits",
				"Vitamin B12: 450 pg/mL - Adequate levels",
			},
			NormalFindings: []string{
				"Your iron levels are healthy - keep up with iron-rich foods like spinach and dates",
				"Blood sugar is well controlled - your diet is working well",
				"Thyroid function is normal - no medication changes needed",
				"White blood cell count indicates no infection",
			},
			Concerns: []string{
				"Vitamin D is slightly low (22 ng/mL) - This is common in Indian women",
				"Consider more morning sunlight exposure (15-20 mins before 10 AM)",
			},
			NextSteps: []string{
				"Continue taking your prenatal vitamins daily",
				"Add Vitamin D supplement as advised by doctor",
				"Eat iron-rich foods like jaggery, spinach, and pomegranate",
				"Next blood test recommended in 4-6 weeks",
			},
		}, []reminderDraft{
			{model.ReminderTypeMedicine, "Start Vitamin D Supplement", "Take 1000 IU Vitamin D daily with breakfast", 0},
			{model.ReminderTypeFollowup, "Follow-up Blood Test", "Schedule next blood test in 4-6 weeks", 35},
			{model.ReminderTypeLifestyle, "Morning Sunlight", "Get 15-20 mins of morning sunlight before 10 AM", noDueDate},
		}
}

func ultrasound(report model.MedicalReport) (model.ReportAnalysis, []reminderDraft) {
	return model.ReportAnalysis{
			Summary: fmt.Sprintf("Your ultrasound report from %s shows that your baby is developing beautifully! "+
				"All measurements are within the normal range for your pregnancy stage. "+
				"The baby's heartbeat is strong and healthy. Dr. %s has noted positive development.", report.ReportDate, report.DoctorName),
			KeyFindings: []string{
				"Baby's heartbeat: 145 bpm - Strong and healthy",
				"Fetal growth: On track for gestational age",
				"Amniotic fluid: Normal levels",
				"Placenta position: Properly placed",
			},
			NormalFindings: []string{
				"Baby's growth is exactly where it should be for this stage",
				"Heart rate is perfect - between 120-160 bpm is ideal",
				"Amniotic fluid levels indicate good kidney function",
				"Placenta is healthy and providing good nutrition to baby",
			},
			Concerns: []string{},
			NextSteps: []string{
				"Continue with regular prenatal visits",
				"Maintain balanced nutrition with proteins and vegetables",
				"Stay hydrated with 8-10 glasses of water daily",
				"Next ultrasound as scheduled by your doctor",
			},
		}, []reminderDraft{
			{model.ReminderTypeFollowup, "Next Prenatal Checkup", "Schedule follow-up visit with Dr. " + report.DoctorName, 21},
			{model.ReminderTypeLifestyle, "Daily Hydration Goal", "Drink 8-10 glasses of water daily for healthy amniotic fluid", noDueDate},
		}
}

func urineTest(report model.MedicalReport) (model.ReportAnalysis, []reminderDraft) {
	return model.ReportAnalysis{
			Summary: fmt.Sprintf("Your urine test results from %s look good overall. "+
				"The test helps monitor your kidney health and check for any infections, which is important during pregnancy. "+
				"Most parameters are within normal limits.", report.ReportDate),
			KeyFindings: []string{
				"Protein: Negative - No signs of preeclampsia",
				"Sugar: Negative - Good glucose control",
				"Bacteria: None detected - No UTI",
				"pH: Normal range",
			},
			NormalFindings: []string{
				"No protein in urine - kidneys are functioning well",
				"No sugar detected - gestational diabetes not indicated",
				"No bacterial infection present",
				"Urine concentration is healthy",
			},
			Concerns: []string{
				"Remember to maintain good hygiene to prevent UTIs",
				"Stay well-hydrated throughout the day",
			},
			NextSteps: []string{
				"Continue drinking plenty of water",
				"Maintain good personal hygiene",
				"Report any burning sensation during urination to doctor",
			},
		}, []reminderDraft{
			{model.ReminderTypeLifestyle, "Hydration Reminder", "Drink water regularly to maintain kidney health and prevent UTIs", noDueDate},
		}
}

func general(report model.MedicalReport) (model.ReportAnalysis, []reminderDraft) {
	return model.ReportAnalysis{
			Summary: fmt.Sprintf("Your medical report from %s has been reviewed. "+
				"Based on the analysis, your health indicators appear to be within acceptable ranges for your current stage. "+
				"Dr. %s can provide specific guidance during your next consultation.", report.ReportDate, report.DoctorName),
			KeyFindings: []string{
				"Report has been successfully analyzed",
				"Key health parameters have been evaluated",
				"Results are being tracked in your health history",
			},
			NormalFindings: []string{
				"Overall health indicators appear stable",
				"No critical abnormalities detected",
				"Continue with your current health routine",
			},
			Concerns: []string{
				"Always discuss any symptoms with your healthcare provider",
				"Keep tracking your daily wellness activities",
			},
			NextSteps: []string{
				"Schedule a follow-up with your doctor to discuss results",
				"Continue with prescribed medications",
				"Maintain a healthy diet and regular activity",
			},
		}, []reminderDraft{
			{model.ReminderTypeFollowup, "Discuss Report with Doctor", fmt.Sprintf("Review this report with Dr. %s at your next visit", report.DoctorName), 14},
		}
}
