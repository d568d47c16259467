package codec

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// DialectSuntech is the only dialect family currently wired into the TCP
// front end. The decode path is keyed by dialect so further families can be
// added without touching the pipeline.
const DialectSuntech = "suntech"

// RawFrame is one wire frame as read from a connection. Ephemeral; consumed
// by Decode and never stored.
type RawFrame struct {
	Data       []byte
	Dialect    string
	RemoteAddr string
}

// TelemetryRecord is the decoded form of one frame. Immutable once produced.
type TelemetryRecord struct {
	UniqueID  string
	Dialect   string
	Timestamp time.Time
	Latitude  float64
	Longitude float64
	Speed     float64
	Course    float64

	// Attributes carries dialect-specific extras (cell tag, satellites,
	// firmware, trailing IO fields).
	Attributes map[string]any
}

// Decode error taxonomy. A failed decode drops the frame; it never reaches
// storage and never terminates the connection.
var (
	ErrMalformedFields        = errors.New("malformed frame fields")
	ErrUnrecognizedIdentifier = errors.New("unrecognized device identifier")
	ErrBadTimestamp           = errors.New("unparsable frame timestamp")
	errNotThisFormat          = errors.New("frame does not match this sub-format")
)

// Tagged identifier shape, e.g. "ST600STT". Tried before the all-digits
// fallback: numeric identifiers are a strict subset of valid tokens, so the
// fallback order must not be swapped.
var (
	reTaggedID  = regexp.MustCompile(`^ST[0-9A-Z]{2,6}STT$`)
	reNumericID = regexp.MustCompile(`^[0-9]+$`)
)

// extractIdentifier validates the raw identifier token. Tagged pattern
// first, then pure digits, otherwise the identifier is unrecognized.
func extractIdentifier(token string) (string, error) {
	if reTaggedID.MatchString(token) {
		return token, nil
	}
	if reNumericID.MatchString(token) {
		return token, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnrecognizedIdentifier, token)
}

// frameParser is one sub-format of the dialect family. Parsers are tried in
// a fixed priority order; returning errNotThisFormat hands the frame to the
// next one.
type frameParser func(id string, fields []string) (*TelemetryRecord, error)

// Richer layout first, compact legacy second.
var suntechParsers = []frameParser{parseModern, parseLegacy}

// Decode turns a raw frame into a telemetry record. Pure and side-effect
// free: no device lookups, no persistence, no clock reads.
func Decode(frame RawFrame) (*TelemetryRecord, error) {
	line := strings.TrimRight(string(frame.Data), "\r\n")
	fields := strings.Split(line, ";")
	if len(fields) < legacyFieldCount {
		return nil, fmt.Errorf("%w: got %d fields, need at least %d",
			ErrMalformedFields, len(fields), legacyFieldCount)
	}

	id, err := extractIdentifier(fields[0])
	if err != nil {
		return nil, err
	}

	var lastErr error
	for _, parse := range suntechParsers {
		rec, err := parse(id, fields)
		if errors.Is(err, errNotThisFormat) {
			lastErr = err
			continue
		}
		if err != nil {
			return nil, err
		}
		rec.Dialect = frame.Dialect
		return rec, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrMalformedFields, lastErr)
}

// Date/time field shapes. Used to discriminate sub-formats: a field that is
// not even date-shaped means "wrong slot, try the next layout", while a
// date-shaped field with impossible values is a fatal decode error.
var (
	reDate  = regexp.MustCompile(`^[0-9]{8}$`)
	reClock = regexp.MustCompile(`^[0-9]{2}:[0-9]{2}:[0-9]{2}$`)
)

func dateShaped(date, clock string) bool {
	return reDate.MatchString(date) && reClock.MatchString(clock)
}

// parseTimestamp combines the date and time fields into a single UTC
// timestamp. An unparsable timestamp is fatal for the frame, not a warning.
func parseTimestamp(date, clock string) (time.Time, error) {
	ts, err := time.ParseInLocation("20060102 15:04:05", date+" "+clock, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q %q", ErrBadTimestamp, date, clock)
	}
	return ts, nil
}
