package insights

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vcscsvcscs/wellness-companion/pkg/model"
)

var profile = model.Profile{Name: "Asma", PregnancyStage: "Second Trimester"}

func TestBuildDigest_HealthyWeek(t *testing.T) {
	now := time.Date(2024, 1, 20, 9, 0, 0, 0, time.UTC)
	snap := model.Snapshot{
		Medicines: []model.Medicine{
			{Name: "Prenatal Vitamins"},
			{Name: "Folic Acid", Taken: true},
			{Name: "Iron Supplement"},
		},
		Appointments: []model.Appointment{
			{DoctorName: "Dr. Priya Sharma", Date: "2024-01-25"},
			{DoctorName: "Dr. Anand Kumar", Date: "2024-02-01"},
		},
		Metrics: healthyWeek(),
	}

	d := BuildDigest(snap, profile, now)

	assert.Equal(t, "Asma", d.RecipientName)
	assert.Equal(t, "4.0", d.MoodAverage)
	assert.Equal(t, "7.1", d.SleepAverage)
	assert.Equal(t, "74%", d.NutritionAverage)
	assert.Equal(t, "4,114", d.StepsAverage)
	assert.Equal(t, []string{tipVitamins}, d.Tips)
	assert.Equal(t, "Prenatal Vitamins, Iron Supplement", d.PendingMedicines)
	assert.Equal(t, "Dr. Priya Sharma on 2024-01-25, Dr. Anand Kumar on 2024-02-01", d.UpcomingAppointments)
	assert.Equal(t, Encouragement(now), d.Encouragement)
}

func TestBuildDigest_AllTips(t *testing.T) {
	snap := model.Snapshot{
		Metrics: weekOfMetrics(
			[]float64{5, 6},
			[]int{50, 60},
			[]int{1000, 2000},
			[]int{2, 3},
		),
	}

	d := BuildDigest(snap, profile, time.Now())

	assert.Equal(t, []string{tipSleep, tipSteps, tipNutrition, tipVitamins}, d.Tips)
	assert.Equal(t, "2.5", d.MoodAverage)
	assert.Equal(t, "1,500", d.StepsAverage)
}

func TestBuildDigest_Defaults(t *testing.T) {
	d := BuildDigest(model.Snapshot{}, profile, time.Now())

	assert.Equal(t, allMedicinesTaken, d.PendingMedicines)
	assert.Equal(t, noAppointments, d.UpcomingAppointments)
	assert.Equal(t, "0.0", d.SleepAverage)
	assert.Equal(t, "0%", d.NutritionAverage)
	assert.Equal(t, "0", d.StepsAverage)
	// Zero averages trigger every threshold tip
	assert.Len(t, d.Tips, 4)
}

func TestBuildDigest_FirstThreeAppointments(t *testing.T) {
	snap := model.Snapshot{
		Appointments: []model.Appointment{
			{DoctorName: "A", Date: "2024-01-01"},
			{DoctorName: "B", Date: "2024-01-02"},
			{DoctorName: "C", Date: "2024-01-03"},
			{DoctorName: "D", Date: "2024-01-04"},
		},
	}

	d := BuildDigest(snap, profile, time.Now())
	assert.Equal(t, "A on 2024-01-01, B on 2024-01-02, C on 2024-01-03", d.UpcomingAppointments)
}

func TestDigest_Text(t *testing.T) {
	d := BuildDigest(model.Snapshot{Metrics: healthyWeek()}, profile, time.Now())
	text := d.Text()

	assert.Contains(t, text, "Hi Asma,")
	assert.Contains(t, text, "Sleep: 7.1 hours")
	assert.Contains(t, text, "• "+tipVitamins)
	assert.Contains(t, text, "Pending medicines: "+allMedicinesTaken)
	assert.NotEmpty(t, d.Subject())
}

func TestEncouragement_StableWithinDay(t *testing.T) {
	morning := time.Date(2024, 3, 5, 6, 0, 0, 0, time.UTC)
	evening := time.Date(2024, 3, 5, 22, 0, 0, 0, time.UTC)

	assert.Equal(t, Encouragement(morning), Encouragement(evening))
	assert.Contains(t, encouragements, Encouragement(morning))
	assert.NotEqual(t, Encouragement(morning), Encouragement(morning.AddDate(0, 0, 1)))
}

func TestMedicineReminderText(t *testing.T) {
	_, ok := MedicineReminderText(profile, []model.Medicine{{Name: "Folic Acid", Taken: true}})
	assert.False(t, ok)

	text, ok := MedicineReminderText(profile, []model.Medicine{
		{Name: "Iron Supplement", Dosage: "1 tablet", Time: "14:00"},
	})
	require.True(t, ok)
	assert.Contains(t, text, "Iron Supplement (1 tablet) at 14:00")
}

func TestAppointmentReminderText(t *testing.T) {
	now := time.Date(2024, 1, 26, 0, 0, 0, 0, time.UTC)
	apts := []model.Appointment{
		{DoctorName: "Dr. Priya Sharma", Specialty: "Gynecologist", Date: "2024-01-25", Time: "10:00"},
		{DoctorName: "Dr. Anand Kumar", Specialty: "General Physician", Date: "2024-02-01", Time: "15:30"},
	}

	text, ok := AppointmentReminderText(profile, apts, now)
	require.True(t, ok)
	assert.Contains(t, text, "Dr. Anand Kumar (General Physician) on 2024-02-01 at 15:30")
	assert.NotContains(t, text, "Dr. Priya Sharma")

	_, ok = AppointmentReminderText(profile, apts[:1], now)
	assert.False(t, ok)
}

func TestGroupThousands(t *testing.T) {
	testCases := map[int]string{
		0:        "0",
		999:      "999",
		1000:     "1,000",
		4114:     "4,114",
		123456:   "123,456",
		1234567:  "1,234,567",
		-4500:    "-4,500",
		-1000000: "-1,000,000",
	}

	for in, want := range testCases {
		assert.Equal(t, want, groupThousands(in), "groupThousands(%d)", in)
	}
}
