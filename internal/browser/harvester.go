package browser

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/chromedp/cdproto/log"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/xkilldash9x/wdu-e2e/api/schemas"
)

// maxConsoleLogs bounds what one page keeps; older entries are dropped first.
const maxConsoleLogs = 500

// Harvester collects console output and uncaught exceptions from every tab of
// a page so a failing scenario can show what the site itself reported.
type Harvester struct {
	logger *zap.Logger

	lock        sync.Mutex
	consoleLogs []schemas.ConsoleLog
	dropped     int
}

func NewHarvester(logger *zap.Logger) *Harvester {
	return &Harvester{logger: logger.Named("harvester")}
}

// Attach starts listening on one tab. The returned actions enable the CDP
// domains the events come from and must run on that tab.
func (h *Harvester) Attach(tabCtx context.Context) chromedp.Tasks {
	chromedp.ListenTarget(tabCtx, func(ev interface{}) {
		switch e := ev.(type) {
		case *runtime.EventConsoleAPICalled:
			h.handleConsoleAPICalled(e)
		case *log.EventEntryAdded:
			h.handleLogEntryAdded(e)
		case *runtime.EventExceptionThrown:
			h.handleExceptionThrown(e)
		}
	})
	return chromedp.Tasks{runtime.Enable(), log.Enable()}
}

// ConsoleLogs returns a copy of everything collected so far, oldest first.
func (h *Harvester) ConsoleLogs() []schemas.ConsoleLog {
	h.lock.Lock()
	defer h.lock.Unlock()
	return append([]schemas.ConsoleLog(nil), h.consoleLogs...)
}

func (h *Harvester) add(entry schemas.ConsoleLog) {
	h.lock.Lock()
	defer h.lock.Unlock()
	if len(h.consoleLogs) >= maxConsoleLogs {
		h.consoleLogs = h.consoleLogs[1:]
		h.dropped++
		if h.dropped == 1 {
			h.logger.Debug("Console log buffer full, dropping oldest entries", zap.Int("limit", maxConsoleLogs))
		}
	}
	h.consoleLogs = append(h.consoleLogs, entry)
}

func (h *Harvester) handleConsoleAPICalled(e *runtime.EventConsoleAPICalled) {
	entry := schemas.ConsoleLog{
		Type:   string(e.Type),
		Text:   consoleArgsText(e.Args),
		Source: "console-api",
	}
	if e.Timestamp != nil {
		entry.Timestamp = e.Timestamp.Time()
	}
	h.add(entry)
}

func (h *Harvester) handleLogEntryAdded(e *log.EventEntryAdded) {
	if e.Entry == nil {
		return
	}
	entry := schemas.ConsoleLog{
		Type:   string(e.Entry.Level),
		Text:   e.Entry.Text,
		Source: string(e.Entry.Source),
	}
	if e.Entry.Timestamp != nil {
		entry.Timestamp = e.Entry.Timestamp.Time()
	}
	h.add(entry)
}

func (h *Harvester) handleExceptionThrown(e *runtime.EventExceptionThrown) {
	if e.ExceptionDetails == nil {
		return
	}
	// The description carries the stack trace when there is one.
	text := e.ExceptionDetails.Text
	if e.ExceptionDetails.Exception != nil && e.ExceptionDetails.Exception.Description != "" {
		text = e.ExceptionDetails.Exception.Description
	}
	entry := schemas.ConsoleLog{
		Type:   "exception",
		Text:   text,
		Source: "runtime",
	}
	if e.Timestamp != nil {
		entry.Timestamp = e.Timestamp.Time()
	}
	h.add(entry)
}

func consoleArgsText(args []*runtime.RemoteObject) string {
	var b strings.Builder
	for i, arg := range args {
		if arg == nil {
			continue
		}
		if i > 0 {
			b.WriteString(" ")
		}
		var val interface{}
		switch {
		case arg.Value != nil && json.Unmarshal(arg.Value, &val) == nil:
			fmt.Fprintf(&b, "%v", val)
		case arg.Description != "":
			b.WriteString(arg.Description)
		default:
			fmt.Fprintf(&b, "[%s]", arg.Type)
		}
	}
	return b.String()
}
