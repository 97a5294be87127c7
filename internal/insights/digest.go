package insights

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/vcscsvcscs/wellness-companion/pkg/model"
)

// Digest tip thresholds
const (
	MinSleepHours     = 7
	MinDailySteps     = 4000
	MinNutritionScore = 70
)

const (
	tipSleep     = "Try to get more sleep! Aim for 7-9 hours per night."
	tipSteps     = "A short 15-minute walk can help improve your energy levels!"
	tipNutrition = "Try adding more fruits and vegetables to your meals."
	tipVitamins  = "Remember to take your prenatal vitamins daily!"

	allMedicinesTaken = "All medicines taken! Great job!"
	noAppointments    = "No upcoming appointments"
)

var encouragements = []string{
	"You're doing an amazing job taking care of yourself and your baby! 🌸",
	"Every small step counts. Keep going, mama! 💪",
	"Remember: you're stronger than you think! 🌟",
	"Your dedication to wellness is inspiring! ✨",
	"Taking time for yourself is the best gift for your baby! 💕",
}

// Encouragement picks the message of the day
func Encouragement(now time.Time) string {
	return encouragements[now.YearDay()%len(encouragements)]
}

// Digest is the content of the weekly insights email
type Digest struct {
	RecipientName        string   `json:"recipientName"`
	MoodAverage          string   `json:"moodAverage"`
	SleepAverage         string   `json:"sleepAverage"`
	NutritionAverage     string   `json:"nutritionAverage"`
	StepsAverage         string   `json:"stepsAverage"`
	Tips                 []string `json:"tips"`
	PendingMedicines     string   `json:"pendingMedicines"`
	UpcomingAppointments string   `json:"upcomingAppointments"`
	Encouragement        string   `json:"encouragement"`
}

// BuildDigest assembles the digest for the given snapshot
func BuildDigest(snap model.Snapshot, profile model.Profile, now time.Time) Digest {
	avg := ComputeAverages(snap.Metrics)

	// Tips compare against the rounded figures shown to the user
	sleep := roundTo(avg.Sleep, 1)
	steps := math.Round(avg.Steps)
	nutrition := math.Round(avg.Nutrition)

	var tips []string
	if sleep < MinSleepHours {
		tips = append(tips, tipSleep)
	}
	if steps < MinDailySteps {
		tips = append(tips, tipSteps)
	}
	if nutrition < MinNutritionScore {
		tips = append(tips, tipNutrition)
	}
	tips = append(tips, tipVitamins)

	pending := PendingMedicines(snap.Medicines)
	names := make([]string, 0, len(pending))
	for _, m := range pending {
		names = append(names, m.Name)
	}
	medicines := strings.Join(names, ", ")
	if medicines == "" {
		medicines = allMedicinesTaken
	}

	apts := snap.Appointments
	if len(apts) > 3 {
		apts = apts[:3]
	}
	lines := make([]string, 0, len(apts))
	for _, a := range apts {
		lines = append(lines, fmt.Sprintf("%s on %s", a.DoctorName, a.Date))
	}
	appointments := strings.Join(lines, ", ")
	if appointments == "" {
		appointments = noAppointments
	}

	return Digest{
		RecipientName:        profile.Name,
		MoodAverage:          strconv.FormatFloat(roundTo(avg.Mood, 1), 'f', 1, 64),
		SleepAverage:         strconv.FormatFloat(sleep, 'f', 1, 64),
		NutritionAverage:     strconv.Itoa(int(nutrition)) + "%",
		StepsAverage:         groupThousands(int(steps)),
		Tips:                 tips,
		PendingMedicines:     medicines,
		UpcomingAppointments: appointments,
		Encouragement:        Encouragement(now),
	}
}

// Subject is the email subject line
func (d Digest) Subject() string {
	return "Your weekly wellness insights"
}

// Text renders the digest as a plain text email body
func (d Digest) Text() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Hi %s,\n\n", d.RecipientName)
	fmt.Fprintf(&b, "%s\n\n", d.Encouragement)
	b.WriteString("This week at a glance:\n")
	fmt.Fprintf(&b, "  Mood: %s / 5\n", d.MoodAverage)
	fmt.Fprintf(&b, "  Sleep: %s hours\n", d.SleepAverage)
	fmt.Fprintf(&b, "  Nutrition: %s\n", d.NutritionAverage)
	fmt.Fprintf(&b, "  Steps: %s\n\n", d.StepsAverage)
	b.WriteString("Tips:\n")
	for _, tip := range d.Tips {
		fmt.Fprintf(&b, "• %s\n", tip)
	}
	fmt.Fprintf(&b, "\nPending medicines: %s\n", d.PendingMedicines)
	fmt.Fprintf(&b, "Upcoming appointments: %s\n", d.UpcomingAppointments)

	return b.String()
}

// MedicineReminderText renders the reminder for untaken medicines. It
// reports false when every medicine has been taken.
func MedicineReminderText(profile model.Profile, meds []model.Medicine) (string, bool) {
	pending := PendingMedicines(meds)
	if len(pending) == 0 {
		return "", false
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\nYou still have medicines to take today:\n", profile.Name)
	for _, m := range pending {
		fmt.Fprintf(&b, "• %s (%s) at %s\n", m.Name, m.Dosage, m.Time)
	}
	return b.String(), true
}

// AppointmentReminderText renders the reminder for upcoming appointments.
// It reports false when nothing is scheduled from today on.
func AppointmentReminderText(profile model.Profile, apts []model.Appointment, now time.Time) (string, bool) {
	upcoming, _ := PartitionAppointments(apts, now)
	if len(upcoming) == 0 {
		return "", false
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\nYour upcoming appointments:\n", profile.Name)
	for _, a := range upcoming {
		fmt.Fprintf(&b, "• %s (%s) on %s at %s\n", a.DoctorName, a.Specialty, a.Date, a.Time)
	}
	return b.String(), true
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// groupThousands formats n with comma separators, e.g. 4100 -> "4,100"
func groupThousands(n int) string {
	s := strconv.Itoa(n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	if neg {
		return "-" + b.String()
	}
	return b.String()
}
