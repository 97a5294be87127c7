package service

// Backing store keys. The names match the ones used by the web client so a
// store exported from it can be loaded as-is.
const (
	KeyChecklist         = "wellness-checklist"
	KeyMedicines         = "wellness-medicines"
	KeyAppointments      = "wellness-appointments"
	KeyReports           = "wellness-reports-v2"
	KeyAnalysisReminders = "wellness-analysis-reminders"
	KeyMetrics           = "wellness-data"

	KeyUserEmail            = "wellness-user-email"
	KeyEmailInsights        = "wellness-email-insights"
	KeyMedicineReminders    = "wellness-medicine-reminders"
	KeyAppointmentReminders = "wellness-appointment-reminders"
)

// AllKeys lists every key the service writes
func AllKeys() []string {
	return []string{
		KeyChecklist,
		KeyMedicines,
		KeyAppointments,
		KeyReports,
		KeyAnalysisReminders,
		KeyMetrics,
		KeyUserEmail,
		KeyEmailInsights,
		KeyMedicineReminders,
		KeyAppointmentReminders,
	}
}
