package codec

import (
	"fmt"
	"strconv"
)

// Required field counts per sub-format. A frame shorter than the count does
// not belong to that layout.
const (
	modernFieldCount = 13
	legacyFieldCount = 8
)

// Modern layout:
//
//	0 id; 1 protocol; 2 model; 3 firmware; 4 date; 5 time; 6 cell;
//	7 lat; 8 lon; 9 speed; 10 course; 11 satellites; 12 fix; 13+ io
func parseModern(id string, fields []string) (*TelemetryRecord, error) {
	if len(fields) < modernFieldCount {
		return nil, fmt.Errorf("%w: modern needs %d fields", errNotThisFormat, modernFieldCount)
	}
	if !dateShaped(fields[4], fields[5]) {
		return nil, fmt.Errorf("%w: no date/time at modern offsets", errNotThisFormat)
	}

	ts, err := parseTimestamp(fields[4], fields[5])
	if err != nil {
		return nil, err
	}
	lat, lon, err := parseCoordinates(fields[7], fields[8])
	if err != nil {
		return nil, err
	}
	speed, err := parseDecimal("speed", fields[9])
	if err != nil {
		return nil, err
	}
	course, err := parseDecimal("course", fields[10])
	if err != nil {
		return nil, err
	}
	sats, err := strconv.Atoi(fields[11])
	if err != nil {
		return nil, fmt.Errorf("%w: satellites %q", ErrMalformedFields, fields[11])
	}

	attrs := map[string]any{
		"protocol":   fields[1],
		"model":      fields[2],
		"firmware":   fields[3],
		"cell":       fields[6],
		"satellites": sats,
		"fix":        fields[12] == "1",
	}
	addExtras(attrs, fields, modernFieldCount)

	return &TelemetryRecord{
		UniqueID:   id,
		Timestamp:  ts,
		Latitude:   lat,
		Longitude:  lon,
		Speed:      speed,
		Course:     course,
		Attributes: attrs,
	}, nil
}

// Legacy layout (compact):
//
//	0 id; 1 protocol; 2 model; 3 date; 4 time; 5 cell; 6 lat; 7 lon;
//	[8 speed; 9 course; 10+ io]
func parseLegacy(id string, fields []string) (*TelemetryRecord, error) {
	if len(fields) < legacyFieldCount {
		return nil, fmt.Errorf("%w: legacy needs %d fields", errNotThisFormat, legacyFieldCount)
	}
	if !dateShaped(fields[3], fields[4]) {
		return nil, fmt.Errorf("%w: no date/time at legacy offsets", errNotThisFormat)
	}

	ts, err := parseTimestamp(fields[3], fields[4])
	if err != nil {
		return nil, err
	}
	lat, lon, err := parseCoordinates(fields[6], fields[7])
	if err != nil {
		return nil, err
	}

	var speed, course float64
	if len(fields) > 8 {
		if speed, err = parseDecimal("speed", fields[8]); err != nil {
			return nil, err
		}
	}
	if len(fields) > 9 {
		if course, err = parseDecimal("course", fields[9]); err != nil {
			return nil, err
		}
	}

	attrs := map[string]any{
		"protocol": fields[1],
		"model":    fields[2],
		"cell":     fields[5],
	}
	addExtras(attrs, fields, 10)

	return &TelemetryRecord{
		UniqueID:   id,
		Timestamp:  ts,
		Latitude:   lat,
		Longitude:  lon,
		Speed:      speed,
		Course:     course,
		Attributes: attrs,
	}, nil
}

// parseCoordinates parses the signed decimal latitude/longitude strings to
// full precision. Range checking belongs to the ingestion pipeline, not here.
func parseCoordinates(latStr, lonStr string) (float64, float64, error) {
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: latitude %q", ErrMalformedFields, latStr)
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: longitude %q", ErrMalformedFields, lonStr)
	}
	return lat, lon, nil
}

func parseDecimal(name, s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q", ErrMalformedFields, name, s)
	}
	return v, nil
}

// addExtras keeps trailing dialect-specific fields under positional keys so
// nothing from the wire is silently discarded.
func addExtras(attrs map[string]any, fields []string, from int) {
	for i := from; i < len(fields); i++ {
		attrs[fmt.Sprintf("io%d", i-from)] = fields[i]
	}
}
