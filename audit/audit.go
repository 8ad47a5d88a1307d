// Copyright (c) 2025 KKTC Anket contributors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/kktc-anket/server/ledger"
	"github.com/kktc-anket/server/models"
)

// writeTimeout bounds a single attempt-log write so a stalled store cannot
// wedge the writer goroutine.
const writeTimeout = 5 * time.Second

// Logger writes attempt log entries asynchronously. The vote path must never
// wait on, or fail because of, audit logging: Record is non-blocking and
// drops (with a warning) when the buffer is full, and store write failures
// are logged server-side only.
type Logger struct {
	store ledger.Store
	ch    chan models.AttemptLogEntry
	done  chan struct{}
}

// New starts a logger writing to store with the given buffer size.
func New(store ledger.Store, buffer int) *Logger {
	if buffer <= 0 {
		buffer = 256
	}
	l := &Logger{
		store: store,
		ch:    make(chan models.AttemptLogEntry, buffer),
		done:  make(chan struct{}),
	}
	go l.run()
	return l
}

// Record enqueues an entry. Never blocks; when the buffer is full the entry
// is dropped, which loses forensics but never a vote.
func (l *Logger) Record(e models.AttemptLogEntry) {
	select {
	case l.ch <- e:
	default:
		slog.Warn("attempt log buffer full, dropping entry",
			"ip", e.IPAddress, "reason", e.Reason)
	}
}

// Close drains pending entries and stops the writer. Call once, at shutdown,
// after the HTTP server has stopped accepting requests.
func (l *Logger) Close() {
	close(l.ch)
	<-l.done
}

func (l *Logger) run() {
	defer close(l.done)
	for e := range l.ch {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		err := l.store.AppendAttempt(ctx, e)
		cancel()
		if err != nil {
			slog.Error("attempt log write failed", "error", err, "ip", e.IPAddress)
		}
	}
}
