package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestZapLoggerForwardsTypedFields(t *testing.T) {
	var buf bytes.Buffer
	zl := NewZapLogger(New(DebugLevel, &buf))

	zl.Info("tilt evaluated",
		zap.String("method", "golden_section"),
		zap.Float64("angle_deg", 34.19),
		zap.Int("evaluations", 27),
		zap.Bool("converged", true),
	)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "tilt evaluated", entry["message"])
	assert.Equal(t, "golden_section", entry["method"])
	assert.InDelta(t, 34.19, entry["angle_deg"], 1e-9)
	assert.Equal(t, float64(27), entry["evaluations"])
	assert.Equal(t, true, entry["converged"])
}

func TestZapAdapterRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	zl := NewZapLogger(New(WarnLevel, &buf))

	zl.Debug("suppressed", zap.Float64("angle_deg", 1.0))
	assert.Zero(t, buf.Len())

	zl.Warn("emitted")
	assert.NotZero(t, buf.Len())
}
