package telemetry

import (
	"fmt"
	"sync"
	"time"

	"github.com/vito/progrock"
	"go.trai.ch/zerr"

	"github.com/capstan-tools/capstan/internal/core/ports"
)

// logSink is a progrock.Writer that renders recorder updates through the
// logger: one summary line per finished vertex, with its duration.
type logSink struct {
	logger ports.Logger

	mu   sync.Mutex
	done map[string]bool
}

func newLogSink(logger ports.Logger) *logSink {
	return &logSink{
		logger: logger,
		done:   map[string]bool{},
	}
}

// WriteStatus receives recorder updates. A vertex reports repeatedly while
// running; only its first completed update produces a summary line.
func (s *logSink) WriteStatus(update *progrock.StatusUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, v := range update.Vertexes {
		if v.Completed == nil || s.done[v.Id] {
			continue
		}
		s.done[v.Id] = true

		var took time.Duration
		if v.Started != nil {
			took = v.Completed.AsTime().Sub(v.Started.AsTime()).Round(time.Millisecond)
		}
		if v.Error != nil {
			rerr := zerr.With(zerr.New(v.GetError()), "command", v.Name)
			s.logger.Error(zerr.With(rerr, "duration", took.String()))
			continue
		}
		s.logger.Info(fmt.Sprintf("%s finished in %s", v.Name, took))
	}
	return nil
}

// Close is a no-op; the sink holds no resources.
func (s *logSink) Close() error { return nil }
