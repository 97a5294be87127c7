package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vcscsvcscs/wellness-companion/internal/pdf"
	"github.com/vcscsvcscs/wellness-companion/internal/profile"
	"github.com/vcscsvcscs/wellness-companion/internal/repository"
	"go.uber.org/zap"
)

func TestSummaryService_GenerateSummary(t *testing.T) {
	svc, _ := newTestService(t, repository.NewMemoryStore(zap.NewNop()), Options{})
	summary := NewSummaryService(svc, profile.NewStaticProvider("", ""), pdf.NewPDFGenerator(zap.NewNop()), zap.NewNop())

	pdfBytes, err := summary.GenerateSummary(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(pdfBytes[:4]))
}
