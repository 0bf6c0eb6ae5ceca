package logger

import (
	"github.com/ThreeDotsLabs/watermill"
	"github.com/rs/zerolog"
)

// Watermill adapts a zerolog logger to watermill.LoggerAdapter so the event
// router logs through the same sink as the HTTP side
type Watermill struct{ l zerolog.Logger }

// NewWatermill wraps l; nil uses Named("events")
func NewWatermill(l *Logger) *Watermill {
	if l == nil {
		l = Named("events")
	}
	return &Watermill{l: *l}
}

func (w *Watermill) event(e *zerolog.Event, msg string, fields watermill.LogFields) {
	for k, v := range fields {
		e = e.Interface(k, v)
	}
	e.Msg(msg)
}

// Error implements watermill.LoggerAdapter
func (w *Watermill) Error(msg string, err error, fields watermill.LogFields) {
	w.event(w.l.Error().Err(err), msg, fields)
}

// Info implements watermill.LoggerAdapter
func (w *Watermill) Info(msg string, fields watermill.LogFields) {
	w.event(w.l.Info(), msg, fields)
}

// Debug implements watermill.LoggerAdapter
func (w *Watermill) Debug(msg string, fields watermill.LogFields) {
	w.event(w.l.Debug(), msg, fields)
}

// Trace implements watermill.LoggerAdapter
func (w *Watermill) Trace(msg string, fields watermill.LogFields) {
	w.event(w.l.Trace(), msg, fields)
}

// With implements watermill.LoggerAdapter
func (w *Watermill) With(fields watermill.LogFields) watermill.LoggerAdapter {
	ctx := w.l.With()
	for k, v := range fields {
		ctx = ctx.Interface(k, v)
	}
	return &Watermill{l: ctx.Logger()}
}

var _ watermill.LoggerAdapter = (*Watermill)(nil)
