package logger

import (
	"strings"

	"go.uber.org/zap"
)

// Field keys shared by every log line of one match request.
const (
	FieldRequestID     = "request_id"
	FieldAnswersSource = "answers_source"
	FieldCatalog       = "catalog"
)

// Request identifies one match run in the logs.
type Request struct {
	ID      string
	Source  string
	Catalog string
}

// Fields returns the zap fields for the request. Blank values are left out.
func (r Request) Fields() []zap.Field {
	fields := make([]zap.Field, 0, 3)
	for _, kv := range [...][2]string{
		{FieldRequestID, r.ID},
		{FieldAnswersSource, r.Source},
		{FieldCatalog, r.Catalog},
	} {
		if v := strings.TrimSpace(kv[1]); v != "" {
			fields = append(fields, zap.String(kv[0], v))
		}
	}
	return fields
}

// WithRequest returns a child logger carrying the request fields.
// A nil logger is replaced with a no-op logger.
func WithRequest(logger *zap.Logger, r Request) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	fields := r.Fields()
	if len(fields) == 0 {
		return logger
	}
	return logger.With(fields...)
}
