package net

import (
	"net/http"

	perr "wildwatch/internal/platform/errors"
)

// Wire is the response envelope shared by every endpoint.
// Success is always present; aggregate and list results sit under Data
type Wire struct {
	Success       bool           `json:"success"`
	Message       string         `json:"message,omitempty"`
	Data          any            `json:"data,omitempty"`
	Code          perr.ErrorCode `json:"code,omitempty"`
	Error         string         `json:"error,omitempty"`
	Field         string         `json:"field,omitempty"`
	InvalidFields []string       `json:"invalidFields,omitempty"`
	RequestID     string         `json:"request_id,omitempty"`
}

// OK builds a 200 envelope
func OK(data any, msg, reqID string) (int, Wire) {
	return http.StatusOK, Wire{Success: true, Message: msg, Data: data, RequestID: reqID}
}

// Created builds a 201 envelope
func Created(data any, msg, reqID string) (int, Wire) {
	return http.StatusCreated, Wire{Success: true, Message: msg, Data: data, RequestID: reqID}
}

// Error builds an error envelope; Message and Error both carry the caller-facing text
func Error(err error, reqID string) (int, Wire) {
	if err == nil {
		return OK(nil, "", reqID)
	}
	w := perr.WireFrom(err)
	return perr.HTTPStatus(err), Wire{
		Success:       false,
		Message:       w.Message,
		Code:          w.Code,
		Error:         w.Message,
		Field:         w.Field,
		InvalidFields: w.Fields,
		RequestID:     reqID,
	}
}
