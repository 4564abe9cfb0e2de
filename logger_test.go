package geo3d_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/geo3d"
	"github.com/hupe1980/geo3d/geom"
)

func TestLogger(t *testing.T) {
	ctx := context.Background()

	var buf bytes.Buffer
	logger := geo3d.NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	idx, err := geo3d.NewOctree(geo3d.WithLogger(logger))
	require.NoError(t, err)

	require.NoError(t, idx.Insert(ctx, 7, geom.Pt(1, 2, 3)))
	require.Error(t, idx.Insert(ctx, 7, geom.Pt(1, 2, 3)))
	_, err = idx.Nearest(ctx, geom.Pt(0, 0, 0), 1)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"msg":"insert completed"`)
	assert.Contains(t, out, `"msg":"insert failed"`)
	assert.Contains(t, out, `"msg":"nearest completed"`)
	assert.Contains(t, out, `"k":1`)
	assert.Contains(t, out, `"index":"Octree"`)
	assert.Contains(t, out, `"kind":"point3D"`)
}

func TestLoggerLevels(t *testing.T) {
	ctx := context.Background()

	var buf bytes.Buffer
	logger := geo3d.NewLogger(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	logger.LogInsert(ctx, 1, geom.KindBox, nil)
	logger.LogSearch(ctx, 1, 2, 0, nil)
	assert.Empty(t, buf.String())

	logger.LogBuild(ctx, 10, nil)
	assert.True(t, strings.Contains(buf.String(), "build completed"))

	buf.Reset()
	logger.WithK(3).Info("scan")
	assert.Contains(t, buf.String(), "k=3")
}

func TestNoopLogger(t *testing.T) {
	assert.NotPanics(t, func() {
		l := geo3d.NoopLogger()
		l.LogNearest(context.Background(), geom.KindPoint, 0, nil)
		l.WithIndex("x").Error("discarded")
	})
	assert.NotNil(t, geo3d.NewLogger(nil))
	assert.NotNil(t, geo3d.NewJSONLogger(slog.LevelWarn))
}
