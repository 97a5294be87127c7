package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/vcscsvcscs/wellness-companion/internal/insights"
	"github.com/vcscsvcscs/wellness-companion/internal/notify"
	"github.com/vcscsvcscs/wellness-companion/internal/profile"
	"go.uber.org/zap"
)

const (
	medicineReminderSubject    = "Medicine reminder"
	appointmentReminderSubject = "Upcoming appointment reminder"
)

// InsightsService derives insights from the wellness state and delivers
// the insight and reminder emails
type InsightsService struct {
	wellness *WellnessService
	profiles profile.Provider
	mailer   notify.Mailer
	logger   *zap.Logger
}

// NewInsightsService creates a new InsightsService
func NewInsightsService(
	wellness *WellnessService,
	profiles profile.Provider,
	mailer notify.Mailer,
	logger *zap.Logger,
) *InsightsService {
	return &InsightsService{
		wellness: wellness,
		profiles: profiles,
		mailer:   mailer,
		logger:   logger,
	}
}

// GetInsights computes the current insights
func (s *InsightsService) GetInsights(ctx context.Context) insights.Insights {
	return insights.Compute(s.wellness.Snapshot(), s.wellness.Now())
}

// GetDigest builds the weekly digest without sending it
func (s *InsightsService) GetDigest(ctx context.Context) insights.Digest {
	return insights.BuildDigest(s.wellness.Snapshot(), s.profiles.Profile(ctx), s.wellness.Now())
}

// SendDigest emails the digest to the stored user email. The email
// preference flag is not consulted.
func (s *InsightsService) SendDigest(ctx context.Context) (insights.Digest, error) {
	email := s.wellness.Preferences().UserEmail
	if email == "" {
		return insights.Digest{}, ErrEmailRequired
	}

	digest := s.GetDigest(ctx)
	err := s.mailer.Send(ctx, notify.Message{
		ToEmail:   email,
		ToName:    digest.RecipientName,
		Subject:   digest.Subject(),
		PlainText: digest.Text(),
	})
	if err != nil {
		s.logger.Error("failed to send insights digest", zap.Error(err))
		return insights.Digest{}, fmt.Errorf("failed to send insights digest: %w", err)
	}

	s.logger.Info("insights digest sent", zap.Int("tips", len(digest.Tips)))
	return digest, nil
}

// SendWeeklyDigest sends the digest when insight emails are enabled and an
// email is set. It reports whether a message was sent.
func (s *InsightsService) SendWeeklyDigest(ctx context.Context) (bool, error) {
	prefs := s.wellness.Preferences()
	if !prefs.EmailInsightsEnabled || prefs.UserEmail == "" {
		s.logger.Debug("weekly digest skipped",
			zap.Bool("enabled", prefs.EmailInsightsEnabled),
			zap.Bool("has_email", prefs.UserEmail != ""),
		)
		return false, nil
	}

	if _, err := s.SendDigest(ctx); err != nil {
		return false, err
	}
	return true, nil
}

// SendMedicineReminder emails the list of medicines not yet taken. It
// reports false without sending when every medicine is taken.
func (s *InsightsService) SendMedicineReminder(ctx context.Context) (bool, error) {
	email := s.wellness.Preferences().UserEmail
	if email == "" {
		return false, ErrEmailRequired
	}

	p := s.profiles.Profile(ctx)
	text, ok := insights.MedicineReminderText(p, s.wellness.Medicines())
	if !ok {
		s.logger.Debug("medicine reminder skipped, nothing pending")
		return false, nil
	}

	return s.send(ctx, notify.Message{
		ToEmail:   email,
		ToName:    p.Name,
		Subject:   medicineReminderSubject,
		PlainText: text,
	})
}

// SendAppointmentReminder emails the upcoming appointments. It reports
// false without sending when none are scheduled.
func (s *InsightsService) SendAppointmentReminder(ctx context.Context) (bool, error) {
	email := s.wellness.Preferences().UserEmail
	if email == "" {
		return false, ErrEmailRequired
	}

	p := s.profiles.Profile(ctx)
	text, ok := insights.AppointmentReminderText(p, s.wellness.Appointments(), s.wellness.Now())
	if !ok {
		s.logger.Debug("appointment reminder skipped, nothing upcoming")
		return false, nil
	}

	return s.send(ctx, notify.Message{
		ToEmail:   email,
		ToName:    p.Name,
		Subject:   appointmentReminderSubject,
		PlainText: text,
	})
}

// SendDailyReminders sends the medicine and appointment reminders whose
// preference flags are enabled. Nothing is sent without a user email.
func (s *InsightsService) SendDailyReminders(ctx context.Context) error {
	prefs := s.wellness.Preferences()
	if prefs.UserEmail == "" {
		s.logger.Debug("daily reminders skipped, no user email")
		return nil
	}

	var errs []error
	if prefs.MedicineRemindersEnabled {
		if _, err := s.SendMedicineReminder(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if prefs.AppointmentRemindersEnabled {
		if _, err := s.SendAppointmentReminder(ctx); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func (s *InsightsService) send(ctx context.Context, msg notify.Message) (bool, error) {
	if err := s.mailer.Send(ctx, msg); err != nil {
		s.logger.Error("failed to send reminder",
			zap.Error(err),
			zap.String("subject", msg.Subject),
		)
		return false, fmt.Errorf("failed to send reminder: %w", err)
	}

	s.logger.Info("reminder sent", zap.String("subject", msg.Subject))
	return true, nil
}
