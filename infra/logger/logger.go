package logger

import (
	"strings"

	"github.com/labstack/gommon/log"
)

const header = `${time_rfc3339} ${level} ${short_file}:${line}`

// Setup configures the package-level gommon logger. Unknown levels fall back
// to info.
func Setup(level string) {
	log.SetHeader(header)
	log.SetLevel(ParseLevel(level))
}

func ParseLevel(level string) log.Lvl {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DEBUG
	case "warn", "warning":
		return log.WARN
	case "error":
		return log.ERROR
	case "off":
		return log.OFF
	default:
		return log.INFO
	}
}
