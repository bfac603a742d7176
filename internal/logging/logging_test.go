package logging_test

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/yogarn/filkompedia-client/internal/logging"
)

func TestSetup(t *testing.T) {
	var buf bytes.Buffer

	logger := logging.Setup("warn", &buf)
	require.Equal(t, zerolog.WarnLevel, logger.GetLevel())

	logger.Info().Msg("hidden")
	logger.Warn().Str("k", "v").Msg("shown")

	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), `"message":"shown"`)
	require.Contains(t, buf.String(), `"k":"v"`)
}

func TestSetupUnknownLevel(t *testing.T) {
	logger := logging.Setup("chatty", &bytes.Buffer{})
	require.Equal(t, zerolog.InfoLevel, logger.GetLevel())
}
