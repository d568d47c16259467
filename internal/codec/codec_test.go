package codec

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func frame(line string) RawFrame {
	return RawFrame{Data: []byte(line), Dialect: DialectSuntech, RemoteAddr: "10.0.0.7:41234"}
}

func TestDecodeLegacyNumericIdentifier(t *testing.T) {
	rec, err := Decode(frame("47733387;04;1097B;20250908;12:44:33;33e530;-03.843813;-038.615475;000.013;000.00;0;4451"))

	require.NoError(t, err)
	assert.Equal(t, "47733387", rec.UniqueID)
	assert.Equal(t, DialectSuntech, rec.Dialect)
	assert.Equal(t, time.Date(2025, 9, 8, 12, 44, 33, 0, time.UTC), rec.Timestamp)
	assert.Equal(t, -3.843813, rec.Latitude)
	assert.Equal(t, -38.615475, rec.Longitude)
	assert.Equal(t, 0.013, rec.Speed)
	assert.Equal(t, 0.0, rec.Course)
	assert.Equal(t, "04", rec.Attributes["protocol"])
	assert.Equal(t, "1097B", rec.Attributes["model"])
	assert.Equal(t, "33e530", rec.Attributes["cell"])
}

func TestDecodeLegacyMinimalFieldCount(t *testing.T) {
	rec, err := Decode(frame("47733387;04;1097B;20250908;12:44:33;33e530;-03.843813;-038.615475"))

	require.NoError(t, err)
	assert.Equal(t, -3.843813, rec.Latitude)
	assert.Equal(t, 0.0, rec.Speed)
}

func TestDecodeModernTaggedIdentifier(t *testing.T) {
	rec, err := Decode(frame("ST600STT;04;ST600;1.0.23;20250908;21:30:04;00e7f0;37.478519;126.886819;012.233;132.50;9;1;17000;0;0"))

	require.NoError(t, err)
	assert.Equal(t, "ST600STT", rec.UniqueID)
	assert.Equal(t, time.Date(2025, 9, 8, 21, 30, 4, 0, time.UTC), rec.Timestamp)
	assert.Equal(t, 37.478519, rec.Latitude)
	assert.Equal(t, 126.886819, rec.Longitude)
	assert.Equal(t, 12.233, rec.Speed)
	assert.Equal(t, 132.5, rec.Course)
	assert.Equal(t, 9, rec.Attributes["satellites"])
	assert.Equal(t, true, rec.Attributes["fix"])
	assert.Equal(t, "1.0.23", rec.Attributes["firmware"])
	assert.Equal(t, "17000", rec.Attributes["io0"])
}

// A legacy frame with enough trailing IO fields to reach the modern field
// count must still decode as legacy: the date/time slots disambiguate.
func TestDecodeLongLegacyNotShadowedByModern(t *testing.T) {
	rec, err := Decode(frame("47733387;04;1097B;20250908;12:44:33;33e530;-03.843813;-038.615475;000.013;000.00;0;4451;1;0;0"))

	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 9, 8, 12, 44, 33, 0, time.UTC), rec.Timestamp)
	assert.Equal(t, -3.843813, rec.Latitude)
}

func TestDecodeTooFewFields(t *testing.T) {
	_, err := Decode(frame("47733387;04;1097B;20250908;12:44:33;33e530;-03.843813"))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedFields)
}

func TestDecodeIsRepeatableNoOpOnBadFrames(t *testing.T) {
	f := frame("47733387;04;1097B;20250908;12:44:33;33e530;bad-lat;-038.615475")
	for i := 0; i < 3; i++ {
		_, err := Decode(f)
		assert.ErrorIs(t, err, ErrMalformedFields)
	}
}

func TestDecodeUnrecognizedIdentifier(t *testing.T) {
	_, err := Decode(frame("HELLO-99;04;1097B;20250908;12:44:33;33e530;-03.843813;-038.615475"))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnrecognizedIdentifier)
}

func TestDecodeBadTimestampIsFatal(t *testing.T) {
	_, err := Decode(frame("47733387;04;1097B;20251388;12:44:33;33e530;-03.843813;-038.615475"))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBadTimestamp)
}

func TestExtractIdentifierTriesTaggedBeforeNumeric(t *testing.T) {
	id, err := extractIdentifier("ST910STT")
	require.NoError(t, err)
	assert.Equal(t, "ST910STT", id)

	id, err = extractIdentifier("0047733387")
	require.NoError(t, err)
	assert.Equal(t, "0047733387", id)

	_, err = extractIdentifier("ST910")
	assert.ErrorIs(t, err, ErrUnrecognizedIdentifier)
}
