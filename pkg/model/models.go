package model

import "time"

// DateLayout is the ISO day format used by every date field in the store
const DateLayout = "2006-01-02"

// ChecklistCategory groups checklist items
type ChecklistCategory string

const (
	ChecklistCategoryHealth   ChecklistCategory = "health"
	ChecklistCategoryBaby     ChecklistCategory = "baby"
	ChecklistCategorySelf     ChecklistCategory = "self"
	ChecklistCategoryExercise ChecklistCategory = "exercise"
)

// Valid reports whether c is one of the known categories
func (c ChecklistCategory) Valid() bool {
	switch c {
	case ChecklistCategoryHealth, ChecklistCategoryBaby, ChecklistCategorySelf, ChecklistCategoryExercise:
		return true
	}
	return false
}

// ChecklistItem represents a daily checklist entry
type ChecklistItem struct {
	ID        string            `json:"id"`
	Label     string            `json:"label"`
	Completed bool              `json:"completed"`
	Category  ChecklistCategory `json:"category"`
	Date      string            `json:"date"`
}

// Medicine represents a medicine the user takes on a schedule
type Medicine struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Dosage    string `json:"dosage"`
	Time      string `json:"time"` // HH:MM
	Frequency string `json:"frequency"`
	Taken     bool   `json:"taken"`
}

// MedicinePatch holds the fields of a medicine that may be updated
type MedicinePatch struct {
	Name      *string `json:"name,omitempty"`
	Dosage    *string `json:"dosage,omitempty"`
	Time      *string `json:"time,omitempty"`
	Frequency *string `json:"frequency,omitempty"`
}

// Appointment represents a single doctor visit
type Appointment struct {
	ID         string `json:"id"`
	DoctorName string `json:"doctorName"`
	Specialty  string `json:"specialty"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	Notes      string `json:"notes"`
}

// AppointmentPatch holds the fields of an appointment that may be updated
type AppointmentPatch struct {
	DoctorName *string `json:"doctorName,omitempty"`
	Specialty  *string `json:"specialty,omitempty"`
	Date       *string `json:"date,omitempty"`
	Time       *string `json:"time,omitempty"`
	Notes      *string `json:"notes,omitempty"`
}

// Report categories understood by the analysis engine. Any other value
// resolves to the default template.
const (
	ReportCategoryBloodTest  = "Blood Test"
	ReportCategoryUltrasound = "Ultrasound"
	ReportCategoryUrineTest  = "Urine Test"
)

// ReminderType classifies an analysis reminder
type ReminderType string

const (
	ReminderTypeFollowup  ReminderType = "followup"
	ReminderTypeMedicine  ReminderType = "medicine"
	ReminderTypeLifestyle ReminderType = "lifestyle"
)

// AnalysisReminder is a follow-up action generated from a report analysis.
// Its ID is derived from the report ID and the template sequence number.
type AnalysisReminder struct {
	ID          string       `json:"id"`
	Type        ReminderType `json:"type"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	DueDate     *string      `json:"dueDate,omitempty"`
	Completed   bool         `json:"completed"`
	ReportID    string       `json:"reportId"`
}

// ReportAnalysis is the narrative produced for an analyzed report
type ReportAnalysis struct {
	Summary        string             `json:"summary"`
	KeyFindings    []string           `json:"keyFindings"`
	NormalFindings []string           `json:"normalFindings"`
	Concerns       []string           `json:"concerns"`
	NextSteps      []string           `json:"nextSteps"`
	Reminders      []AnalysisReminder `json:"reminders"`
}

// MedicalReport represents an uploaded medical report
type MedicalReport struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Type           string          `json:"type"`
	ReportCategory string          `json:"reportCategory"`
	DoctorName     string          `json:"doctorName"`
	ReportDate     string          `json:"reportDate"`
	UploadDate     string          `json:"uploadDate"`
	FileURL        string          `json:"fileUrl"`
	Analyzed       bool            `json:"analyzed"`
	Analysis       *ReportAnalysis `json:"analysis,omitempty"`
}

// MoodEntry is one day of the mood series (value 1-5)
type MoodEntry struct {
	Date  string `json:"date"`
	Value int    `json:"value"`
	Emoji string `json:"emoji"`
}

// SleepEntry is one day of the sleep series
type SleepEntry struct {
	Date  string  `json:"date"`
	Hours float64 `json:"hours"`
}

// NutritionEntry is one day of the nutrition series (score 0-100)
type NutritionEntry struct {
	Date  string `json:"date"`
	Score int    `json:"score"`
}

// ActivityEntry is one day of the activity series
type ActivityEntry struct {
	Date  string `json:"date"`
	Steps int    `json:"steps"`
}

// WellnessMetrics holds the four independent daily series
type WellnessMetrics struct {
	Mood      []MoodEntry      `json:"mood"`
	Sleep     []SleepEntry     `json:"sleep"`
	Nutrition []NutritionEntry `json:"nutrition"`
	Activity  []ActivityEntry  `json:"activity"`
}

// Preferences are the scalar user settings kept next to the collections
type Preferences struct {
	UserEmail                   string `json:"userEmail"`
	EmailInsightsEnabled        bool   `json:"emailInsightsEnabled"`
	MedicineRemindersEnabled    bool   `json:"medicineRemindersEnabled"`
	AppointmentRemindersEnabled bool   `json:"appointmentRemindersEnabled"`
}

// Profile is the read-only identity supplied by the profile provider
type Profile struct {
	Name           string `json:"name"`
	PregnancyStage string `json:"pregnancyStage"`
}

// Snapshot is a point-in-time copy of the whole store
type Snapshot struct {
	Checklist         []ChecklistItem    `json:"checklist"`
	Medicines         []Medicine         `json:"medicines"`
	Appointments      []Appointment      `json:"appointments"`
	Reports           []MedicalReport    `json:"reports"`
	AnalysisReminders []AnalysisReminder `json:"analysisReminders"`
	Metrics           WellnessMetrics    `json:"wellnessData"`
	Preferences       Preferences        `json:"preferences"`
}

// DataExport is the document returned by a full data export
type DataExport struct {
	Profile    Profile   `json:"profile"`
	Snapshot   Snapshot  `json:"data"`
	ExportedAt time.Time `json:"exportedAt"`
}
