// Package playlist reads and writes HLS media playlists as typed segment
// entries instead of raw text, so splicing never silently drops tags.
package playlist

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ErrUnknownTag is returned when a playlist contains a tag between segment
// entries that this package does not understand (e.g. discontinuity or
// byte-range markers). The segmenter is never expected to emit those for
// plain codec-copy VOD output, so they fail the parse instead of vanishing.
var ErrUnknownTag = errors.New("unknown playlist tag")

// Entry is one segment reference: its EXTINF duration and URI line.
type Entry struct {
	Duration float64
	URI      string
}

// Parse reads a media playlist and returns its segment entries in order.
// Header tags before the first #EXTINF are skipped, #EXT-X-ENDLIST terminates
// the list, and any other tag after the first #EXTINF is an error.
func Parse(r io.Reader) ([]Entry, error) {
	scanner := bufio.NewScanner(r)

	var entries []Entry
	var pending *float64
	started := false

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, "#EXTINF:"):
			if pending != nil {
				return nil, fmt.Errorf("#EXTINF without a segment URI before %q", line)
			}
			duration, err := parseDuration(line)
			if err != nil {
				return nil, err
			}
			pending = &duration
			started = true

		case line == "#EXT-X-ENDLIST":
			if pending != nil {
				return nil, errors.New("playlist ends with a dangling #EXTINF")
			}
			return entries, nil

		case strings.HasPrefix(line, "#"):
			if !started {
				// header/metadata before the first segment entry
				continue
			}
			return nil, fmt.Errorf("%w: %s", ErrUnknownTag, line)

		default:
			if pending == nil {
				return nil, fmt.Errorf("segment URI %q without #EXTINF", line)
			}
			entries = append(entries, Entry{Duration: *pending, URI: line})
			pending = nil
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if pending != nil {
		return nil, errors.New("playlist ends with a dangling #EXTINF")
	}

	return entries, nil
}

// ParseFile parses the playlist at path.
func ParseFile(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	entries, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return entries, nil
}

func parseDuration(line string) (float64, error) {
	value := strings.TrimPrefix(line, "#EXTINF:")
	if i := strings.Index(value, ","); i >= 0 {
		value = value[:i]
	}

	duration, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid #EXTINF duration %q", line)
	}
	return duration, nil
}

// Render builds a complete VOD media playlist. Media sequence is always 0,
// every segment is listed.
func Render(targetDuration int, entries []Entry) string {
	var b strings.Builder

	b.WriteString("#EXTM3U\n")
	b.WriteString("#EXT-X-VERSION:3\n")
	fmt.Fprintf(&b, "#EXT-X-TARGETDURATION:%d\n", targetDuration)
	b.WriteString("#EXT-X-MEDIA-SEQUENCE:0\n")

	for _, entry := range entries {
		fmt.Fprintf(&b, "#EXTINF:%.6f,\n", entry.Duration)
		b.WriteString(entry.URI + "\n")
	}

	b.WriteString("#EXT-X-ENDLIST\n")
	return b.String()
}

// WriteFile publishes a playlist atomically: the text is written to a
// temporary file next to path and renamed into place, so the canonical
// playlist is never observable half-written.
func WriteFile(path string, text string) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(text), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
