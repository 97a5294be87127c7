package audit

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogger_LogWithoutDatabase(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	l := NewLogger(nil, zap.New(core))
	ctx := context.Background()

	require.NoError(t, l.EnsureSchema(ctx))
	require.NoError(t, l.LogCreate(ctx, ResourceMedicine, "m1"))
	require.NoError(t, l.LogDelete(ctx, ResourceReport, "r1"))

	entries := logs.FilterMessage("Audit log entry").All()
	require.Len(t, entries, 2)
	assert.Equal(t, "CREATE", entries[0].ContextMap()["operation"])
	assert.Equal(t, "medicine", entries[0].ContextMap()["resource_type"])
	assert.Equal(t, "r1", entries[1].ContextMap()["resource_id"])
}

func TestLogger_RecentNewestFirst(t *testing.T) {
	l := NewLogger(nil, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, l.LogCreate(ctx, ResourceChecklistItem, "1"))
	require.NoError(t, l.LogUpdate(ctx, ResourceChecklistItem, "1"))
	require.NoError(t, l.LogDelete(ctx, ResourceChecklistItem, "1"))

	recent := l.Recent(2)
	require.Len(t, recent, 2)
	assert.Equal(t, OperationDelete, recent[0].OperationType)
	assert.Equal(t, OperationUpdate, recent[1].OperationType)
	assert.False(t, recent[0].Timestamp.IsZero())

	assert.Len(t, l.Recent(0), 3)
}

func TestLogger_RecentIsBounded(t *testing.T) {
	l := NewLogger(nil, zap.NewNop())
	ctx := context.Background()

	for i := 0; i < DefaultRecentCapacity+25; i++ {
		require.NoError(t, l.LogCreate(ctx, ResourceMedicine, fmt.Sprintf("m%d", i)))
	}

	recent := l.Recent(0)
	require.Len(t, recent, DefaultRecentCapacity)
	assert.Equal(t, fmt.Sprintf("m%d", DefaultRecentCapacity+24), recent[0].ResourceID)
	assert.Equal(t, "m25", recent[len(recent)-1].ResourceID)
}
