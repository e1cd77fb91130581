package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"sort"
	"strings"
	"sync"
	"time"
)

var levelRank = map[string]int{
	"DEBUG": 0,
	"INFO":  1,
	"WARN":  2,
	"ERROR": 3,
}

// StdLogger writes leveled records through the standard library log package,
// as plain text or one JSON object per line
type StdLogger struct {
	mu       sync.Mutex
	out      *log.Logger
	minLevel int
	json     bool
	now      func() time.Time
}

// NewStdLogger creates a logger dropping records below level.
// level is one of debug, info, warn, error (any case); format is text or json.
func NewStdLogger(w io.Writer, level, format string) (*StdLogger, error) {
	rank, ok := levelRank[strings.ToUpper(level)]
	if !ok {
		return nil, fmt.Errorf("unknown log level %q", level)
	}

	l := &StdLogger{
		minLevel: rank,
		now:      time.Now,
	}
	switch format {
	case "json":
		l.json = true
		l.out = log.New(w, "", 0)
	case "text", "":
		l.out = log.New(w, "", log.LstdFlags)
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
	return l, nil
}

// Log writes one record; unknown levels are treated as INFO
func (l *StdLogger) Log(level, message string, metadata map[string]interface{}) {
	level = strings.ToUpper(level)
	rank, ok := levelRank[level]
	if !ok {
		level, rank = "INFO", levelRank["INFO"]
	}
	if rank < l.minLevel {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.json {
		record := make(map[string]interface{}, len(metadata)+3)
		for k, v := range metadata {
			record[k] = v
		}
		record["time"] = l.now().UTC().Format(time.RFC3339)
		record["level"] = level
		record["msg"] = message
		data, err := json.Marshal(record)
		if err != nil {
			l.out.Printf(`{"level":"ERROR","msg":"failed to encode log record: %v"}`, err)
			return
		}
		l.out.Print(string(data))
		return
	}

	var b strings.Builder
	b.WriteString(level)
	b.WriteString(" ")
	b.WriteString(message)
	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, metadata[k])
	}
	l.out.Print(b.String())
}
