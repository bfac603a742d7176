package notify_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yogarn/filkompedia-client/notify"
)

func TestConsole(t *testing.T) {
	var buf bytes.Buffer
	c := notify.NewConsole(&buf)

	c.Success("Added to cart")
	c.Error("Failed to load book")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "[success]")
	assert.Contains(t, lines[0], "Added to cart")
	assert.Contains(t, lines[1], "[error]")
	assert.Contains(t, lines[1], "Failed to load book")
}

func TestRecorder(t *testing.T) {
	var r notify.Recorder
	var n notify.Notifier = &r

	n.Info("Loading")
	n.Success("Done")

	assert.Equal(t, []notify.Message{
		{Level: notify.LevelInfo, Text: "Loading"},
		{Level: notify.LevelSuccess, Text: "Done"},
	}, r.Messages())
	assert.Equal(t, "success", notify.LevelSuccess.String())
}
