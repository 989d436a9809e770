package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitWriter_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf, false, FormatJSON)
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	log.Info().Str("owner_id", "u1").Msg("hello")
	log.Debug().Msg("hidden")

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, "hello", line["message"])
	assert.Equal(t, "u1", line["owner_id"])
	assert.False(t, DebugEnabled())
}

func TestInitWriter_DebugLevel(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf, true, FormatConsole)
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	log.Debug().Msg("visible")
	assert.Contains(t, buf.String(), "visible")
	assert.True(t, DebugEnabled())
}
