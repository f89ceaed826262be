package audit

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Event records one contract-engine outcome for the audit trail.
type Event struct {
	Timestamp time.Time
	Operation string // e.g. "register", "verify_receipt"
	ActorID   string
	ItemID    string
	Result    string // "success" or "failure"
	Reason    string // error kind or message
	Metadata  map[string]string
}

// Logger is the interface for recording audit events.
type Logger interface {
	LogEvent(event Event)
}

// LogrusAuditLogger writes audit events as structured log lines.
type LogrusAuditLogger struct {
	log *logrus.Logger
}

// NewLogrusAuditLogger returns a Logger backed by the given logrus logger,
// or the standard one when nil.
func NewLogrusAuditLogger(log *logrus.Logger) Logger {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &LogrusAuditLogger{log: log}
}

func (l *LogrusAuditLogger) LogEvent(event Event) {
	fields := logrus.Fields{
		"operation": event.Operation,
		"actor":     event.ActorID,
		"result":    event.Result,
	}
	if event.ItemID != "" {
		fields["item"] = event.ItemID
	}
	if event.Reason != "" {
		fields["reason"] = event.Reason
	}
	for k, v := range event.Metadata {
		fields[k] = v
	}
	l.log.WithFields(fields).Info("audit")
}

// NopLogger discards every event. Useful in tests.
type NopLogger struct{}

func (NopLogger) LogEvent(Event) {}
