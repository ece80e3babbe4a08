// Package slog provides logging decorators for corpus building services.
package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/corpusmaker"
)

// Ensure LoggingParser implements corpusmaker.MarkupParser.
var _ corpusmaker.MarkupParser = (*LoggingParser)(nil)

// LoggingParser wraps a MarkupParser with debug logging.
type LoggingParser struct {
	next   corpusmaker.MarkupParser
	logger *slog.Logger
}

// NewLoggingParser creates a new LoggingParser.
func NewLoggingParser(next corpusmaker.MarkupParser, logger *slog.Logger) *LoggingParser {
	return &LoggingParser{next: next, logger: logger}
}

// Parse delegates to the wrapped parser and logs the operation.
func (p *LoggingParser) Parse(markup string) (nodes []corpusmaker.Node, err error) {
	defer func(begin time.Time) {
		p.logger.Info("parse",
			"bytes", len(markup),
			"nodes", len(nodes),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return p.next.Parse(markup)
}
