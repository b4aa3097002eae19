package ffmpeg

import (
	"strings"

	"github.com/rs/zerolog"
)

// logWriter bridges engine stderr into zerolog line by line.
type logWriter struct {
	logger zerolog.Logger
}

func (l *logWriter) Write(p []byte) (int, error) {
	for _, line := range strings.Split(string(p), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			l.logger.Warn().Msg(line)
		}
	}
	return len(p), nil
}
