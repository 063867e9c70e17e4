// Package notify holds reset delivery sinks that do not need a database.
package notify

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/schoolrecords/records-portal/internal/core/domain"
)

// LogSink writes reset links to the log. Development only: the link is
// logged at debug level so it never reaches production log pipelines.
type LogSink struct {
	log zerolog.Logger
}

func NewLogSink(log zerolog.Logger) *LogSink {
	return &LogSink{log: log}
}

func (s *LogSink) Deliver(_ context.Context, n domain.ResetNotice) error {
	s.log.Info().
		Str("employee_id", n.EmployeeID).
		Time("expires_at", n.ExpiresAt).
		Msg("password reset notice ready")
	s.log.Debug().
		Str("employee_id", n.EmployeeID).
		Str("link", n.Link).
		Msg("password reset link")
	return nil
}
