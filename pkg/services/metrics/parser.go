package metrics

import (
	"context"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// Parse converts a raw metric value into an optional number. nil, the
// empty string and the "-" placeholder all mean unknown, never zero.
// Thousands-separator commas are stripped ("3,536" -> 3536). A malformed
// value is logged and treated as unknown; a single bad cell must not
// abort the run.
func Parse(ctx context.Context, raw *string) *float64 {
	if raw == nil {
		return nil
	}

	s := strings.TrimSpace(*raw)
	if s == "" || s == "-" {
		return nil
	}

	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("value", *raw).Msg("unparseable metric value")
		return nil
	}
	return &v
}
