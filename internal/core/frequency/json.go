package frequency

import (
	"bytes"
	"strconv"

	perr "wildwatch/internal/platform/errors"

	json "github.com/goccy/go-json"
)

// Minutes decodes either a minute count (30) or a label ("30min", "1hr")
type Minutes int

// UnmarshalJSON implements json.Unmarshaler
func (m *Minutes) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		n, err := FromLabel(s)
		if err != nil {
			return err
		}
		*m = Minutes(n)
		return nil
	}
	n, err := strconv.Atoi(string(b))
	if err != nil || !Valid(n) {
		return perr.WithField(perr.Validationf("alertFrequency must be one of 2, 5, 10, 30, 60 minutes"), "alertFrequency")
	}
	*m = Minutes(n)
	return nil
}
