package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitStructured_JSONInProduction(t *testing.T) {
	var buf bytes.Buffer
	InitStructuredTo("production", &buf)

	Info("published %s", "p1")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "published p1", entry["message"])
	assert.Equal(t, "angple-press", entry["service"])
}

func TestWithRequestID(t *testing.T) {
	var buf bytes.Buffer
	InitStructuredTo("production", &buf)

	l := WithRequestID("req-1")
	l.Warn().Msg("slow")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "req-1", entry["request_id"])
}
