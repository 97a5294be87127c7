package service

import (
	"context"
	"fmt"

	"github.com/vcscsvcscs/wellness-companion/internal/audit"
	"github.com/vcscsvcscs/wellness-companion/internal/profile"
	"github.com/vcscsvcscs/wellness-companion/pkg/model"
	"go.uber.org/zap"
)

// PrivacyService handles data export and erasure
type PrivacyService struct {
	wellness    *WellnessService
	profiles    profile.Provider
	auditLogger *audit.Logger
	logger      *zap.Logger
}

// NewPrivacyService creates a new PrivacyService
func NewPrivacyService(
	wellness *WellnessService,
	profiles profile.Provider,
	auditLogger *audit.Logger,
	logger *zap.Logger,
) *PrivacyService {
	return &PrivacyService{
		wellness:    wellness,
		profiles:    profiles,
		auditLogger: auditLogger,
		logger:      logger,
	}
}

// ExportData returns every collection, the preferences and the profile
func (s *PrivacyService) ExportData(ctx context.Context) model.DataExport {
	export := model.DataExport{
		Profile:    s.profiles.Profile(ctx),
		Snapshot:   s.wellness.Snapshot(),
		ExportedAt: s.wellness.Now(),
	}

	if s.auditLogger != nil {
		err := s.auditLogger.Log(ctx, audit.Entry{
			OperationType: audit.OperationExport,
			ResourceType:  audit.ResourceAllData,
			ResourceID:    "*",
			Timestamp:     export.ExportedAt,
		})
		if err != nil {
			s.logger.Warn("failed to record export audit entry", zap.Error(err))
		}
	}

	s.logger.Info("user data exported",
		zap.Int("reports", len(export.Snapshot.Reports)),
		zap.Int("reminders", len(export.Snapshot.AnalysisReminders)),
	)

	return export
}

// EraseData deletes every stored key and empties the collections. The
// next process start reseeds them.
func (s *PrivacyService) EraseData(ctx context.Context) error {
	s.logger.Info("starting user data erasure")

	if err := s.wellness.Erase(ctx); err != nil {
		s.logger.Error("failed to erase user data", zap.Error(err))
		return fmt.Errorf("failed to erase user data: %w", err)
	}

	s.logger.Info("user data erased")
	return nil
}
