package service

import (
	"time"

	"github.com/vcscsvcscs/wellness-companion/pkg/model"
)

// moodEmojis maps a mood value 1-5 to its emoji
var moodEmojis = [...]string{"😢", "😕", "😐", "🙂", "😊"}

// MoodEmoji returns the emoji for a mood value, or "" when out of range
func MoodEmoji(value int) string {
	if value < 1 || value > len(moodEmojis) {
		return ""
	}
	return moodEmojis[value-1]
}

func seedChecklist(now time.Time) []model.ChecklistItem {
	today := now.Format(model.DateLayout)
	return []model.ChecklistItem{
		{ID: "1", Label: "Morning walk (15 mins)", Completed: false, Category: model.ChecklistCategoryHealth, Date: today},
		{ID: "2", Label: "Drink 8 glasses of water", Completed: true, Category: model.ChecklistCategoryHealth, Date: today},
		{ID: "3", Label: "Take prenatal vitamins", Completed: true, Category: model.ChecklistCategoryHealth, Date: today},
		{ID: "4", Label: "Light stretching exercises", Completed: false, Category: model.ChecklistCategoryExercise, Date: today},
		{ID: "5", Label: "Baby feeding schedule", Completed: true, Category: model.ChecklistCategoryBaby, Date: today},
		{ID: "6", Label: "15 mins self-care time", Completed: false, Category: model.ChecklistCategorySelf, Date: today},
	}
}

func seedMedicines() []model.Medicine {
	return []model.Medicine{
		{ID: "1", Name: "Prenatal Vitamins", Dosage: "1 tablet", Time: "09:00", Frequency: "Daily", Taken: false},
		{ID: "2", Name: "Folic Acid", Dosage: "400mcg", Time: "09:00", Frequency: "Daily", Taken: true},
		{ID: "3", Name: "Iron Supplement", Dosage: "1 tablet", Time: "14:00", Frequency: "Daily", Taken: false},
	}
}

func seedAppointments() []model.Appointment {
	return []model.Appointment{
		{ID: "1", DoctorName: "Dr. Priya Sharma", Specialty: "Gynecologist", Date: "2024-01-25", Time: "10:00", Notes: "Regular checkup"},
		{ID: "2", DoctorName: "Dr. Anand Kumar", Specialty: "General Physician", Date: "2024-02-01", Time: "15:30", Notes: "Blood test review"},
	}
}

func seedReminders() []model.AnalysisReminder {
	return []model.AnalysisReminder{
		{
			ID:          "1-r1",
			Type:        model.ReminderTypeMedicine,
			Title:       "Start Vitamin D Supplement",
			Description: "Take Vitamin D supplement daily",
			Completed:   false,
			ReportID:    "1",
		},
	}
}

func seedReports() []model.MedicalReport {
	return []model.MedicalReport{
		{
			ID:             "1",
			Name:           "Blood Test Report",
			Type:           "PDF",
			ReportCategory: model.ReportCategoryBloodTest,
			DoctorName:     "Dr. Priya Sharma",
			ReportDate:     "2024-01-15",
			UploadDate:     "2024-01-15",
			FileURL:        "#",
			Analyzed:       true,
			Analysis: &model.ReportAnalysis{
				Summary: "Your blood test results from 2024-01-15 show that most of your values are within healthy ranges for your pregnancy stage. " +
					"Your hemoglobin level indicates good iron levels, which is wonderful for both you and your baby.",
				KeyFindings: []string{
					"Hemoglobin: 12.5 g/dL - Good for pregnancy",
					"Blood Sugar (Fasting): 95 mg/dL - Normal range",
					"Thyroid TSH: 2.1 mIU/L - Within healthy limits",
				},
				NormalFindings: []string{
					"Hemoglobin: 12.5 g/dL (Normal)",
					"Blood Sugar: 95 mg/dL (Normal)",
					"Thyroid TSH: 2.1 mIU/L (Normal)",
				},
				Concerns:  []string{"Vitamin D slightly low at 25 ng/mL"},
				NextSteps: []string{"Consider Vitamin D supplements", "Increase sun exposure", "Follow up in 3 months"},
				Reminders: seedReminders(),
			},
		},
		{
			ID:             "2",
			Name:           "Ultrasound Report",
			Type:           "Image",
			ReportCategory: model.ReportCategoryUltrasound,
			DoctorName:     "Dr. Meera Patel",
			ReportDate:     "2024-01-10",
			UploadDate:     "2024-01-10",
			FileURL:        "#",
			Analyzed:       false,
		},
	}
}

// seedMetrics returns seven days of fixed values ending on now's day
func seedMetrics(now time.Time) model.WellnessMetrics {
	var (
		moods     = []int{4, 3, 5, 4, 4, 5, 3}
		sleep     = []float64{7.2, 6.5, 8.0, 5.8, 7.5, 6.9, 7.8}
		nutrition = []int{72, 65, 80, 68, 85, 77, 70}
		steps     = []int{4200, 3100, 5600, 2800, 4900, 3700, 4500}
	)

	m := model.WellnessMetrics{
		Mood:      make([]model.MoodEntry, 0, 7),
		Sleep:     make([]model.SleepEntry, 0, 7),
		Nutrition: make([]model.NutritionEntry, 0, 7),
		Activity:  make([]model.ActivityEntry, 0, 7),
	}

	for i := 0; i < 7; i++ {
		date := now.AddDate(0, 0, i-6).Format(model.DateLayout)
		m.Mood = append(m.Mood, model.MoodEntry{Date: date, Value: moods[i], Emoji: MoodEmoji(moods[i])})
		m.Sleep = append(m.Sleep, model.SleepEntry{Date: date, Hours: sleep[i]})
		m.Nutrition = append(m.Nutrition, model.NutritionEntry{Date: date, Score: nutrition[i]})
		m.Activity = append(m.Activity, model.ActivityEntry{Date: date, Steps: steps[i]})
	}

	return m
}
