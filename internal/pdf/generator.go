package pdf

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/vcscsvcscs/wellness-companion/internal/insights"
	"github.com/vcscsvcscs/wellness-companion/pkg/model"
	"go.uber.org/zap"
)

// PDFGenerator renders the wellness summary document
type PDFGenerator struct {
	logger *zap.Logger
}

// NewPDFGenerator creates a new PDFGenerator
func NewPDFGenerator(logger *zap.Logger) *PDFGenerator {
	return &PDFGenerator{
		logger: logger,
	}
}

// SummaryData contains everything printed on the summary
type SummaryData struct {
	Profile     model.Profile
	Snapshot    model.Snapshot
	Insights    insights.Insights
	GeneratedAt time.Time
}

// Generate creates the summary PDF
func (g *PDFGenerator) Generate(data *SummaryData) ([]byte, error) {
	if data == nil {
		return nil, fmt.Errorf("summary data is required")
	}

	g.logger.Info("generating wellness summary PDF",
		zap.String("user_name", data.Profile.Name),
		zap.Int("reports", len(data.Snapshot.Reports)),
	)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.SetTitle("Wellness Summary", true)

	// Core fonts are cp1252; anything outside it is replaced
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	w := &writer{pdf: pdf, tr: tr}

	pdf.AddPage()

	g.addTitle(w, "Wellness Summary", data.Profile, data.GeneratedAt)
	g.addChecklistProgress(w, data.Insights)
	g.addMetricAverages(w, data.Insights.Averages, data.Snapshot.Metrics)
	g.addMedicines(w, data.Snapshot.Medicines)
	g.addAppointments(w, data.Insights.UpcomingAppointments)
	g.addReports(w, data.Snapshot.Reports)
	g.addOpenReminders(w, data.Insights.PendingReminders)

	var buf bytes.Buffer
	err := pdf.Output(&buf)
	if err != nil {
		g.logger.Error("failed to generate PDF", zap.Error(err))
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	g.logger.Info("wellness summary PDF generated",
		zap.Int("size_bytes", buf.Len()),
		zap.Int("pages", pdf.PageCount()),
	)

	return buf.Bytes(), nil
}

type writer struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
}

func (w *writer) line(h float64, text string) {
	w.pdf.CellFormat(0, h, w.tr(text), "", 1, "L", false, 0, "")
}

func (w *writer) paragraph(h float64, text string) {
	w.pdf.MultiCell(0, h, w.tr(text), "", "L", false)
}

func (w *writer) bold(h float64, text string) {
	w.pdf.SetFont("Arial", "B", 10)
	w.line(h, text)
	w.pdf.SetFont("Arial", "", 10)
}

// addTitle adds the document title and profile header
func (g *PDFGenerator) addTitle(w *writer, title string, profile model.Profile, generatedAt time.Time) {
	w.pdf.SetFont("Arial", "B", 20)
	w.pdf.CellFormat(0, 10, w.tr(title), "", 1, "C", false, 0, "")
	w.pdf.Ln(5)

	w.pdf.SetFont("Arial", "", 12)
	w.line(8, fmt.Sprintf("Name: %s", profile.Name))
	if profile.PregnancyStage != "" {
		w.line(8, fmt.Sprintf("Stage: %s", profile.PregnancyStage))
	}
	w.line(8, fmt.Sprintf("Generated: %s", generatedAt.Format("2006-01-02 15:04")))
	w.pdf.Ln(10)
}

// addSectionHeader adds a section header
func (g *PDFGenerator) addSectionHeader(w *writer, title string) {
	w.pdf.SetFont("Arial", "B", 14)
	w.pdf.SetFillColor(230, 230, 230)
	w.pdf.CellFormat(0, 10, w.tr(title), "", 1, "L", true, 0, "")
	w.pdf.Ln(3)
	w.pdf.SetFont("Arial", "", 10)
}

func (g *PDFGenerator) addChecklistProgress(w *writer, in insights.Insights) {
	g.addSectionHeader(w, "Daily Checklist")

	if in.ChecklistTotal == 0 {
		w.line(8, "No checklist items recorded.")
		w.pdf.Ln(5)
		return
	}

	w.line(6, fmt.Sprintf("Completed: %d of %d (%.0f%%)",
		in.ChecklistCompleted, in.ChecklistTotal, in.CompletionRatio*100))
	w.pdf.Ln(5)
}

func (g *PDFGenerator) addMetricAverages(w *writer, avg insights.Averages, metrics model.WellnessMetrics) {
	g.addSectionHeader(w, "Wellness Averages")

	if len(metrics.Mood)+len(metrics.Sleep)+len(metrics.Nutrition)+len(metrics.Activity) == 0 {
		w.line(8, "No wellness data recorded.")
		w.pdf.Ln(5)
		return
	}

	w.line(6, fmt.Sprintf("Mood: %.1f / 5 (%d days)", avg.Mood, len(metrics.Mood)))
	w.line(6, fmt.Sprintf("Sleep: %.1f hours (%d days)", avg.Sleep, len(metrics.Sleep)))
	w.line(6, fmt.Sprintf("Nutrition: %.0f%% (%d days)", avg.Nutrition, len(metrics.Nutrition)))
	w.line(6, fmt.Sprintf("Steps: %.0f (%d days)", avg.Steps, len(metrics.Activity)))
	w.pdf.Ln(5)
}

func (g *PDFGenerator) addMedicines(w *writer, meds []model.Medicine) {
	g.addSectionHeader(w, "Medicines")

	if len(meds) == 0 {
		w.line(8, "No medicines recorded.")
		w.pdf.Ln(5)
		return
	}

	for _, m := range meds {
		status := "pending"
		if m.Taken {
			status = "taken"
		}
		w.line(6, fmt.Sprintf("- %s, %s at %s (%s) - %s", m.Name, m.Dosage, m.Time, m.Frequency, status))
	}
	w.pdf.Ln(5)
}

func (g *PDFGenerator) addAppointments(w *writer, apts []model.Appointment) {
	g.addSectionHeader(w, "Upcoming Appointments")

	if len(apts) == 0 {
		w.line(8, "No upcoming appointments.")
		w.pdf.Ln(5)
		return
	}

	for _, a := range apts {
		w.bold(6, fmt.Sprintf("%s %s", a.Date, a.Time))
		w.line(5, fmt.Sprintf("  %s (%s)", a.DoctorName, a.Specialty))
		if a.Notes != "" {
			w.paragraph(5, "  "+a.Notes)
		}
		w.pdf.Ln(2)
	}
	w.pdf.Ln(3)
}

func (g *PDFGenerator) addReports(w *writer, reports []model.MedicalReport) {
	g.addSectionHeader(w, "Medical Reports")

	if len(reports) == 0 {
		w.line(8, "No medical reports uploaded.")
		w.pdf.Ln(5)
		return
	}

	for _, r := range reports {
		w.bold(6, fmt.Sprintf("%s - %s (%s)", r.ReportDate, r.Name, r.ReportCategory))
		w.line(5, fmt.Sprintf("  Doctor: %s", r.DoctorName))

		if !r.Analyzed || r.Analysis == nil {
			w.line(5, "  Not analyzed yet.")
			w.pdf.Ln(3)
			continue
		}

		w.paragraph(5, "  "+r.Analysis.Summary)
		if len(r.Analysis.Concerns) > 0 {
			w.paragraph(5, "  Concerns: "+strings.Join(r.Analysis.Concerns, "; "))
		}
		if len(r.Analysis.NextSteps) > 0 {
			w.paragraph(5, "  Next steps: "+strings.Join(r.Analysis.NextSteps, "; "))
		}
		w.pdf.Ln(3)
	}
	w.pdf.Ln(2)
}

func (g *PDFGenerator) addOpenReminders(w *writer, reminders []model.AnalysisReminder) {
	g.addSectionHeader(w, "Open Reminders")

	if len(reminders) == 0 {
		w.line(8, "No open reminders.")
		w.pdf.Ln(5)
		return
	}

	for _, r := range reminders {
		due := "no due date"
		if r.DueDate != nil {
			due = "due " + *r.DueDate
		}
		w.line(6, fmt.Sprintf("- [%s] %s (%s)", r.Type, r.Title, due))
	}
	w.pdf.Ln(5)
}
