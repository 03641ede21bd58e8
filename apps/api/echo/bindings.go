package echoapi

import (
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/darasa/core"
)

var orderingParam = "ordering"

type Ordering struct {
	Orderings []core.DBOrdering
}

func (ord *Ordering) Bind(ctx echo.Context) {
	data := ctx.QueryParams()
	if len(data) == 0 {
		return
	}
	val, ok := data[orderingParam]
	if !ok || len(val) == 0 || val[0] == "" {
		return
	}

	for _, field := range strings.Split(val[0], ",") {
		field = strings.TrimSpace(field)
		descending := strings.HasPrefix(field, "-")
		if descending {
			field = field[1:] // drop "-"
		}
		ord.Orderings = append(ord.Orderings, core.DBOrdering{Field: field, Ascending: !descending})
	}
}

// accepted timestamp layouts, most to least specific
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

var (
	errRequiredText  = "this field is required"
	errBadTimestText = "invalid timestamp; expected an ISO 8601 value"
)

// parseTimestamp parses a required timestamp query param.
func parseTimestamp(val, field string) (time.Time, error) {
	if val == "" {
		return time.Time{}, core.NewValidationError(nil, core.FieldError{Field: field, Error: errRequiredText})
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, val); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, core.NewValidationError(nil, core.FieldError{Field: field, Error: errBadTimestText})
}

// parseOptionalTimestamp parses an optional timestamp query param; nil when absent.
func parseOptionalTimestamp(val, field string) (*time.Time, error) {
	if val == "" {
		return nil, nil
	}
	ts, err := parseTimestamp(val, field)
	if err != nil {
		return nil, err
	}
	return &ts, nil
}
