package http

import (
	"bytes"
	"strconv"
	"strings"

	perr "wildwatch/internal/platform/errors"

	json "github.com/goccy/go-json"
)

// Confidence accepts a JSON number or a numeric string
type Confidence float64

// UnmarshalJSON implements json.Unmarshaler
func (c *Confidence) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return perr.WithField(perr.Validationf("confidence must be numeric"), "confidence")
		}
		*c = Confidence(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return perr.WithField(perr.Validationf("confidence must be numeric"), "confidence")
	}
	*c = Confidence(v)
	return nil
}

// Payload is the detection posted by the inference process
type Payload struct {
	ID            string      `json:"id"             example:"a1b2c3"`
	Animal        string      `json:"animal"         example:"Leopard"`
	Confidence    *Confidence `json:"confidence"     swaggertype:"number" example:"0.87"`
	FormattedTime string      `json:"formatted_time" example:"2025-03-14 05:12:09"`
}

// complete reports whether the required fields are present; zero confidence counts as present
func (p Payload) complete() bool {
	return strings.TrimSpace(p.Animal) != "" && p.Confidence != nil && strings.TrimSpace(p.FormattedTime) != ""
}
