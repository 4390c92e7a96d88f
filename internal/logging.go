package internal

import (
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/go-faster/errors"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	sfmt "github.com/samber/slog-formatter"
)

// SensitiveKeys are query parameters and log attributes that carry credentials.
var SensitiveKeys = []string{
	"access_token",
	"client_secret",
	"appsecret_proof",
	"code",
	"fb_exchange_token",
}

const redacted = "***"

func isSensitive(key string) bool {
	for _, k := range SensitiveKeys {
		if k == key {
			return true
		}
	}
	return false
}

// RedactURL returns u as a string with every credential query value masked.
func RedactURL(u *url.URL) string {
	if u == nil {
		return ""
	}
	q := u.Query()
	changed := false
	for k := range q {
		if isSensitive(k) {
			q.Set(k, redacted)
			changed = true
		}
	}
	if !changed {
		return u.String()
	}
	c := *u
	c.RawQuery = q.Encode()
	return c.String()
}

// RedactURLString is RedactURL for a URL that has not been parsed yet.
// Unparseable input is masked entirely.
func RedactURLString(s string) string {
	u, err := url.Parse(s)
	if err != nil {
		return redacted
	}
	return RedactURL(u)
}

// RedactingHandler wraps h so that credential attributes are masked and any
// "url" attribute has its credential query values masked.
func RedactingHandler(h slog.Handler) slog.Handler {
	formatters := make([]sfmt.Formatter, 0, len(SensitiveKeys)+1)
	for _, k := range SensitiveKeys {
		formatters = append(formatters, sfmt.FormatByKey(k, func(slog.Value) slog.Value {
			return slog.StringValue(redacted)
		}))
	}
	formatters = append(formatters, sfmt.FormatByKey("url", func(v slog.Value) slog.Value {
		return slog.StringValue(RedactURLString(v.String()))
	}))
	return sfmt.NewFormatterHandler(formatters...)(h)
}

// NewLogger returns a redacting logger built on l, or a discarding one when l is nil.
func NewLogger(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(RedactingHandler(l.Handler()))
}

// NewConsoleLogger returns a human-readable logger writing to output. Colors are
// enabled only when color is set and output is a terminal.
func NewConsoleLogger(output *os.File, level slog.Level, color bool) *slog.Logger {
	if color {
		color = isatty.IsTerminal(output.Fd())
	}
	return slog.New(RedactingHandler(tint.NewHandler(output, &tint.Options{
		Level:      level,
		TimeFormat: "Jan 02 15:04:05.000",
		NoColor:    !color,
	})))
}

// ParseLevel parses a level name such as "debug", "INFO" or "warn+2".
func ParseLevel(s string) (slog.Level, error) {
	name := s
	offset := 0
	if i := strings.IndexAny(s, "+-"); i >= 0 {
		name = s[:i]
		var err error
		offset, err = strconv.Atoi(s[i:])
		if err != nil {
			return 0, errors.Wrapf(err, "level %q", s)
		}
	}

	var v slog.Level
	switch strings.ToUpper(name) {
	case "DEBUG":
		v = slog.LevelDebug
	case "INFO", "":
		v = slog.LevelInfo
	case "WARN":
		v = slog.LevelWarn
	case "ERROR":
		v = slog.LevelError
	default:
		return 0, errors.Errorf("level %q: unknown name", s)
	}
	return v + slog.Level(offset), nil
}
