package progrock_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/flexgen/internal/adapters/telemetry/progrock"
	"go.trai.ch/flexgen/internal/core/domain"
	"go.trai.ch/flexgen/internal/core/ports"
)

func TestRecorder_Record(t *testing.T) {
	recorder := progrock.New()

	ctx, vertex := recorder.Record(context.Background(), "app:generate")
	require.NotNil(t, vertex)

	fromCtx, ok := ports.VertexFromContext(ctx)
	require.True(t, ok)
	assert.Same(t, vertex, fromCtx)

	_, err := vertex.Stdout().Write([]byte("generated 3 files\n"))
	require.NoError(t, err)
	_, err = vertex.Stderr().Write([]byte("deprecated option\n"))
	require.NoError(t, err)
	vertex.Log(domain.LogLevelInfo, "info")
	vertex.Log(domain.LogLevelError, "error")
	vertex.Complete(nil)

	require.NoError(t, recorder.Close())
}

func TestRecorder_SameNameTwice(t *testing.T) {
	recorder := progrock.New()

	_, first := recorder.Record(context.Background(), "app:generate")
	_, second := recorder.Record(context.Background(), "app:generate")
	assert.NotSame(t, first, second)

	first.Cached()
	first.Complete(nil)
	second.Complete(errors.New("exit status 1"))

	require.NoError(t, recorder.Close())
}
