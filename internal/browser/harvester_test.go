package browser

import (
	"fmt"
	"testing"
	"time"

	"github.com/chromedp/cdproto/log"
	"github.com/chromedp/cdproto/runtime"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xkilldash9x/wdu-e2e/api/schemas"
)

func TestHarvester_ConsoleAPICalled(t *testing.T) {
	h := NewHarvester(zap.NewNop())
	ts := runtime.Timestamp(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC))

	h.handleConsoleAPICalled(&runtime.EventConsoleAPICalled{
		Type: runtime.APITypeError,
		Args: []*runtime.RemoteObject{
			{Type: runtime.TypeString, Value: []byte(`"bad input"`)},
			{Type: runtime.TypeNumber, Value: []byte(`42`)},
			{Type: runtime.TypeObject, Description: "HTMLFormElement"},
		},
		Timestamp: &ts,
	})

	logs := h.ConsoleLogs()
	require.Len(t, logs, 1)
	assert.Equal(t, "error", logs[0].Type)
	assert.Equal(t, "bad input 42 HTMLFormElement", logs[0].Text)
	assert.Equal(t, "console-api", logs[0].Source)
	assert.Equal(t, 2024, logs[0].Timestamp.Year())
}

func TestHarvester_LogEntryAndException(t *testing.T) {
	h := NewHarvester(zap.NewNop())

	h.handleLogEntryAdded(&log.EventEntryAdded{Entry: &log.Entry{
		Source: log.SourceNetwork,
		Level:  log.LevelWarning,
		Text:   "Failed to load resource",
	}})
	h.handleLogEntryAdded(&log.EventEntryAdded{})
	h.handleExceptionThrown(&runtime.EventExceptionThrown{ExceptionDetails: &runtime.ExceptionDetails{
		Text:      "Uncaught",
		Exception: &runtime.RemoteObject{Description: "TypeError: x is undefined\n    at form.js:3"},
	}})
	h.handleExceptionThrown(&runtime.EventExceptionThrown{})

	want := []schemas.ConsoleLog{
		{Type: "warning", Text: "Failed to load resource", Source: "network"},
		{Type: "exception", Text: "TypeError: x is undefined\n    at form.js:3", Source: "runtime"},
	}
	if diff := cmp.Diff(want, h.ConsoleLogs()); diff != "" {
		t.Errorf("ConsoleLogs() mismatch (-want +got):\n%s", diff)
	}
}

func TestHarvester_DropsOldest(t *testing.T) {
	h := NewHarvester(zap.NewNop())
	for i := 0; i < maxConsoleLogs+5; i++ {
		h.handleLogEntryAdded(&log.EventEntryAdded{Entry: &log.Entry{
			Source: log.SourceJavascript,
			Level:  log.LevelInfo,
			Text:   fmt.Sprintf("entry %d", i),
		}})
	}

	logs := h.ConsoleLogs()
	require.Len(t, logs, maxConsoleLogs)
	assert.Equal(t, "entry 5", logs[0].Text)
	assert.Equal(t, fmt.Sprintf("entry %d", maxConsoleLogs+4), logs[len(logs)-1].Text)

	// Callers get a copy.
	logs[0].Text = "changed"
	assert.Equal(t, "entry 5", h.ConsoleLogs()[0].Text)
}

func TestConsoleArgsText_Unserializable(t *testing.T) {
	text := consoleArgsText([]*runtime.RemoteObject{
		nil,
		{Type: runtime.TypeFunction, ObjectID: runtime.RemoteObjectID("1")},
	})
	assert.Equal(t, " [function]", text)
}
