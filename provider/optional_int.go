package provider

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	"github.com/goccy/go-json"
)

// OptionalInt is a whole currency or head count figure. The upstream sends
// these as JSON numbers, sometimes in exponent form, as numeric strings
// ("164000"), as null, or as "". Null, non-numeric strings and an absent
// field leave Valid false.
type OptionalInt struct {
	Int64 int64
	Valid bool
}

// Int returns a valid OptionalInt.
func Int(v int64) OptionalInt {
	return OptionalInt{Int64: v, Valid: true}
}

// Ptr converts to the nullable form used by the store and the API.
func (o OptionalInt) Ptr() *int64 {
	if !o.Valid {
		return nil
	}
	v := o.Int64
	return &v
}

func (o *OptionalInt) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*o = OptionalInt{}
		return nil
	}

	raw := string(b)
	quoted := b[0] == '"'
	if quoted {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if s == "" {
			*o = OptionalInt{}
			return nil
		}
		raw = s
	}

	if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
		*o = Int(v)
		return nil
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		// Placeholders such as "N/A" mean the figure is unknown.
		if quoted {
			*o = OptionalInt{}
			return nil
		}
		return fmt.Errorf("invalid integer value %q", raw)
	}

	*o = Int(int64(math.Round(f)))
	return nil
}

func (o OptionalInt) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatInt(o.Int64, 10)), nil
}
