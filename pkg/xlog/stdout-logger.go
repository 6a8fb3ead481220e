package xlog

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// StdoutLogger mirrors the JSON file log to a human-readable console line.
type StdoutLogger struct {
	Color bool
}

var stdoutLogger StdoutLogger

func (l *StdoutLogger) Write(p []byte) (n int, err error) {
	entry := map[string]interface{}{}
	err = json.Unmarshal(p, &entry)
	if err != nil {
		return
	}

	pre, sub := "", ""
	if l.Color {
		pre, sub = FixColor(fmt.Sprintf("%s", entry["level"]))
	}

	tStr := fmt.Sprintf("%s", entry["time"])
	t, err := time.Parse("2006-01-02T15:04:05.999Z07:00", tStr)
	if err == nil {
		tStr = t.Format("2006/01/02 15:04:05")
	}

	fname := ""
	f, ok := entry["file"]
	if ok {
		fname, _ = f.(string)
	}

	if len(fname) < 20 {
		fname = fname + strings.Repeat(" ", 20-len(fname))
	}
	if len(fname) > 20 {
		fname = fname[len(fname)-20:]
	}

	fmt.Printf(pre+"[%s] %s %s: %s"+sub+"\n", entry["app"], tStr, fname, entry["msg"])

	return len(p), nil
}
