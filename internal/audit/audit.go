package audit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// OperationType represents the type of operation performed
type OperationType string

const (
	OperationCreate OperationType = "CREATE"
	OperationUpdate OperationType = "UPDATE"
	OperationDelete OperationType = "DELETE"
	OperationExport OperationType = "EXPORT"
)

// ResourceType represents the collection an operation touched
type ResourceType string

const (
	ResourceChecklistItem ResourceType = "checklist_item"
	ResourceMedicine      ResourceType = "medicine"
	ResourceAppointment   ResourceType = "appointment"
	ResourceReport        ResourceType = "report"
	ResourceReminder      ResourceType = "analysis_reminder"
	ResourceMetrics       ResourceType = "wellness_metrics"
	ResourcePreferences   ResourceType = "preferences"
	ResourceAllData       ResourceType = "all_data"
)

// DefaultRecentCapacity is how many entries are kept in memory for Recent
const DefaultRecentCapacity = 100

// Entry represents an audit log entry
type Entry struct {
	OperationType  OperationType  `json:"operation"`
	ResourceType   ResourceType   `json:"resource"`
	ResourceID     string         `json:"resourceId"`
	Timestamp      time.Time      `json:"timestamp"`
	AdditionalData map[string]any `json:"additionalData,omitempty"`
}

// Logger records mutations to the structured log, an in-memory ring of
// recent entries, and optionally the audit_logs table.
type Logger struct {
	db       *pgxpool.Pool
	logger   *zap.Logger
	mu       sync.Mutex
	recent   []Entry
	capacity int
}

// NewLogger creates a new audit logger. db may be nil, in which case
// entries are only logged and kept in memory.
func NewLogger(db *pgxpool.Pool, logger *zap.Logger) *Logger {
	return &Logger{
		db:       db,
		logger:   logger,
		capacity: DefaultRecentCapacity,
	}
}

// EnsureSchema creates the audit_logs table when a database is attached
func (l *Logger) EnsureSchema(ctx context.Context) error {
	if l.db == nil {
		return nil
	}

	query := `
		CREATE TABLE IF NOT EXISTS audit_logs (
			id              BIGSERIAL PRIMARY KEY,
			operation_type  TEXT NOT NULL,
			resource_type   TEXT NOT NULL,
			resource_id     TEXT NOT NULL,
			timestamp       TIMESTAMPTZ NOT NULL,
			additional_data JSONB
		)
	`
	if _, err := l.db.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create audit_logs table: %w", err)
	}

	return nil
}

// Log creates an audit log entry
func (l *Logger) Log(ctx context.Context, entry Entry) error {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	l.logger.Info("Audit log entry",
		zap.String("operation", string(entry.OperationType)),
		zap.String("resource_type", string(entry.ResourceType)),
		zap.String("resource_id", entry.ResourceID),
		zap.Time("timestamp", entry.Timestamp),
	)

	l.remember(entry)

	if l.db == nil {
		return nil
	}

	query := `
		INSERT INTO audit_logs (
			operation_type, resource_type, resource_id, timestamp, additional_data
		) VALUES ($1, $2, $3, $4, $5)
	`

	_, err := l.db.Exec(ctx, query,
		string(entry.OperationType),
		string(entry.ResourceType),
		entry.ResourceID,
		entry.Timestamp,
		entry.AdditionalData,
	)
	if err != nil {
		l.logger.Error("Failed to write audit log to database",
			zap.Error(err),
			zap.String("operation", string(entry.OperationType)),
			zap.String("resource_type", string(entry.ResourceType)),
		)
		return fmt.Errorf("failed to write audit log: %w", err)
	}

	return nil
}

func (l *Logger) remember(entry Entry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.recent = append(l.recent, entry)
	if over := len(l.recent) - l.capacity; over > 0 {
		l.recent = append([]Entry(nil), l.recent[over:]...)
	}
}

// LogCreate logs a CREATE operation
func (l *Logger) LogCreate(ctx context.Context, resource ResourceType, resourceID string) error {
	return l.Log(ctx, Entry{
		OperationType: OperationCreate,
		ResourceType:  resource,
		ResourceID:    resourceID,
	})
}

// LogUpdate logs an UPDATE operation
func (l *Logger) LogUpdate(ctx context.Context, resource ResourceType, resourceID string) error {
	return l.Log(ctx, Entry{
		OperationType: OperationUpdate,
		ResourceType:  resource,
		ResourceID:    resourceID,
	})
}

// LogDelete logs a DELETE operation
func (l *Logger) LogDelete(ctx context.Context, resource ResourceType, resourceID string) error {
	return l.Log(ctx, Entry{
		OperationType: OperationDelete,
		ResourceType:  resource,
		ResourceID:    resourceID,
	})
}

// Recent returns up to limit of the most recent entries, newest first
func (l *Logger) Recent(limit int) []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	if limit <= 0 || limit > len(l.recent) {
		limit = len(l.recent)
	}

	out := make([]Entry, 0, limit)
	for i := len(l.recent) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, l.recent[i])
	}
	return out
}
