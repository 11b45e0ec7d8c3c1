package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONLoggerWritesFields(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "debug", Format: "json", Writer: &buf}).With(String("structure", "fleet"))

	log.Warn(context.Background(), "operation failed", String("command", "load"), Int("weight", 350), Err(errors.New("over capacity")))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "WARN", rec["level"])
	assert.Equal(t, "operation failed", rec["msg"])
	assert.Equal(t, "fleet", rec["structure"])
	assert.Equal(t, "load", rec["command"])
	assert.Equal(t, float64(350), rec["weight"])
	assert.Equal(t, "over capacity", rec["error"])
}

func TestLevelFiltering(t *testing.T) {
	tests := []struct {
		level     string
		wantDebug bool
		wantInfo  bool
		wantWarn  bool
	}{
		{level: "debug", wantDebug: true, wantInfo: true, wantWarn: true},
		{level: "", wantInfo: true, wantWarn: true},
		{level: "warning", wantWarn: true},
		{level: "error"},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			log := New(Config{Level: tt.level, Writer: &buf})
			ctx := context.Background()

			log.Debug(ctx, "d-msg")
			log.Info(ctx, "i-msg")
			log.Warn(ctx, "w-msg")

			out := buf.String()
			assert.Equal(t, tt.wantDebug, bytes.Contains([]byte(out), []byte("d-msg")))
			assert.Equal(t, tt.wantInfo, bytes.Contains([]byte(out), []byte("i-msg")))
			assert.Equal(t, tt.wantWarn, bytes.Contains([]byte(out), []byte("w-msg")))
		})
	}
}
