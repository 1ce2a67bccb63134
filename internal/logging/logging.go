// ABOUTME: Logger setup
// ABOUTME: Configures the global logrus logger's level, format and output
package logging

import (
	"fmt"
	"io"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Setup configures the standard logrus logger
func Setup(w io.Writer, level, format string) error {
	lvl, err := log.ParseLevel(strings.ToLower(level))
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}

	var formatter log.Formatter
	switch strings.ToLower(format) {
	case "json":
		formatter = &log.JSONFormatter{}
	case "text", "":
		formatter = &log.TextFormatter{FullTimestamp: true}
	default:
		return fmt.Errorf("invalid log format %q (supported: text, json)", format)
	}

	log.SetOutput(w)
	log.SetLevel(lvl)
	log.SetFormatter(formatter)
	return nil
}
