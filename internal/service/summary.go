package service

import (
	"context"
	"fmt"

	"github.com/vcscsvcscs/wellness-companion/internal/insights"
	"github.com/vcscsvcscs/wellness-companion/internal/pdf"
	"github.com/vcscsvcscs/wellness-companion/internal/profile"
	"go.uber.org/zap"
)

// SummaryService renders the PDF wellness summary
type SummaryService struct {
	wellness *WellnessService
	profiles profile.Provider
	pdfGen   *pdf.PDFGenerator
	logger   *zap.Logger
}

// NewSummaryService creates a new SummaryService
func NewSummaryService(
	wellness *WellnessService,
	profiles profile.Provider,
	pdfGen *pdf.PDFGenerator,
	logger *zap.Logger,
) *SummaryService {
	return &SummaryService{
		wellness: wellness,
		profiles: profiles,
		pdfGen:   pdfGen,
		logger:   logger,
	}
}

// GenerateSummary renders the summary for the current state
func (s *SummaryService) GenerateSummary(ctx context.Context) ([]byte, error) {
	now := s.wellness.Now()
	snap := s.wellness.Snapshot()

	data := &pdf.SummaryData{
		Profile:     s.profiles.Profile(ctx),
		Snapshot:    snap,
		Insights:    insights.Compute(snap, now),
		GeneratedAt: now,
	}

	pdfBytes, err := s.pdfGen.Generate(data)
	if err != nil {
		s.logger.Error("failed to generate summary PDF", zap.Error(err))
		return nil, fmt.Errorf("failed to generate summary PDF: %w", err)
	}

	return pdfBytes, nil
}
