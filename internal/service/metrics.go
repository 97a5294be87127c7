package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/vcscsvcscs/wellness-companion/internal/audit"
	"github.com/vcscsvcscs/wellness-companion/pkg/model"
	"go.uber.org/zap"
)

// Metric ranges accepted by the Log* operations
const (
	MinMood           = 1
	MaxMood           = 5
	MaxSleepHours     = 24
	MaxNutritionScore = 100
)

// upsertByDate drops any entry for date and appends entry, so a day logged
// twice keeps only the latest value at the end of the series.
func upsertByDate[E any](series []E, date string, dateOf func(E) string, entry E) []E {
	out := make([]E, 0, len(series)+1)
	for _, e := range series {
		if dateOf(e) != date {
			out = append(out, e)
		}
	}
	return append(out, entry)
}

// LogMood records today's mood. An empty emoji is derived from value.
func (s *WellnessService) LogMood(ctx context.Context, value int, emoji string) error {
	if value < MinMood || value > MaxMood {
		return fmt.Errorf("%w: mood must be between %d and %d, got %d", ErrInvalidMetric, MinMood, MaxMood, value)
	}
	if emoji == "" {
		emoji = MoodEmoji(value)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	today := s.today()
	s.metrics.Mood = upsertByDate(s.metrics.Mood, today,
		func(e model.MoodEntry) string { return e.Date },
		model.MoodEntry{Date: today, Value: value, Emoji: emoji})

	s.metricLogged(ctx, "mood", today)
	return nil
}

// LogSleep records today's hours of sleep
func (s *WellnessService) LogSleep(ctx context.Context, hours float64) error {
	if math.IsNaN(hours) || hours < 0 || hours > MaxSleepHours {
		return fmt.Errorf("%w: sleep must be between 0 and %d hours, got %v", ErrInvalidMetric, MaxSleepHours, hours)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	today := s.today()
	s.metrics.Sleep = upsertByDate(s.metrics.Sleep, today,
		func(e model.SleepEntry) string { return e.Date },
		model.SleepEntry{Date: today, Hours: hours})

	s.metricLogged(ctx, "sleep", today)
	return nil
}

// LogNutrition records today's nutrition score
func (s *WellnessService) LogNutrition(ctx context.Context, score int) error {
	if score < 0 || score > MaxNutritionScore {
		return fmt.Errorf("%w: nutrition score must be between 0 and %d, got %d", ErrInvalidMetric, MaxNutritionScore, score)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	today := s.today()
	s.metrics.Nutrition = upsertByDate(s.metrics.Nutrition, today,
		func(e model.NutritionEntry) string { return e.Date },
		model.NutritionEntry{Date: today, Score: score})

	s.metricLogged(ctx, "nutrition", today)
	return nil
}

// LogActivity records today's step count
func (s *WellnessService) LogActivity(ctx context.Context, steps int) error {
	if steps < 0 {
		return fmt.Errorf("%w: steps cannot be negative, got %d", ErrInvalidMetric, steps)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	today := s.today()
	s.metrics.Activity = upsertByDate(s.metrics.Activity, today,
		func(e model.ActivityEntry) string { return e.Date },
		model.ActivityEntry{Date: today, Steps: steps})

	s.metricLogged(ctx, "activity", today)
	return nil
}

func (s *WellnessService) metricLogged(ctx context.Context, series, date string) {
	s.save(ctx, KeyMetrics, s.metrics)
	s.record(ctx, audit.OperationUpdate, audit.ResourceMetrics, series)

	s.logger.Info("metric logged",
		zap.String("series", series),
		zap.String("date", date),
	)
}

// TrimMetrics drops entries older than the last windowDays days (today
// included) from every series, along with entries whose date cannot be
// parsed. It returns the number of entries removed.
func (s *WellnessService) TrimMetrics(ctx context.Context, windowDays int) int {
	if windowDays <= 0 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	cutoff := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -(windowDays - 1))

	keep := func(date string) bool {
		d, err := time.ParseInLocation(model.DateLayout, date, now.Location())
		return err == nil && !d.Before(cutoff)
	}

	var removed int
	s.metrics.Mood, removed = trimSeries(s.metrics.Mood, func(e model.MoodEntry) bool { return keep(e.Date) }, removed)
	s.metrics.Sleep, removed = trimSeries(s.metrics.Sleep, func(e model.SleepEntry) bool { return keep(e.Date) }, removed)
	s.metrics.Nutrition, removed = trimSeries(s.metrics.Nutrition, func(e model.NutritionEntry) bool { return keep(e.Date) }, removed)
	s.metrics.Activity, removed = trimSeries(s.metrics.Activity, func(e model.ActivityEntry) bool { return keep(e.Date) }, removed)

	if removed == 0 {
		return 0
	}

	s.save(ctx, KeyMetrics, s.metrics)
	s.record(ctx, audit.OperationDelete, audit.ResourceMetrics, "trim")

	s.logger.Info("metrics trimmed",
		zap.Int("window_days", windowDays),
		zap.Int("count", removed),
	)

	return removed
}

func trimSeries[E any](series []E, keep func(E) bool, removed int) ([]E, int) {
	out := make([]E, 0, len(series))
	for _, e := range series {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out, removed + len(series) - len(out)
}
