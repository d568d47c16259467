package codec

import (
	"fmt"
	"strings"

	"tracker-svr/internal/domain"
)

// Generic command types accepted at the submission boundary. Each maps to a
// dialect keyword below; "custom" passes the payload through untouched.
const (
	TypeCustom           = "custom"
	TypePositionSingle   = "positionSingle"
	TypePositionPeriodic = "positionPeriodic"
	TypeEngineStop       = "engineStop"
	TypeEngineResume     = "engineResume"
	TypeReboot           = "rebootDevice"
)

// cmdHeader tags outbound command frames and inbound acknowledgements.
const cmdHeader = "ST300CMD"

var suntechKeywords = map[string]string{
	TypePositionSingle:   "StatusReq",
	TypePositionPeriodic: "SetInterval",
	TypeEngineStop:       "Disable1",
	TypeEngineResume:     "Enable1",
	TypeReboot:           "Reboot",
}

// KnownCommandType reports whether the submission boundary should accept the
// type. Unknown types are rejected before anything is enqueued.
func KnownCommandType(cmdType string) bool {
	if cmdType == TypeCustom {
		return true
	}
	_, ok := suntechKeywords[cmdType]
	return ok
}

// BuildCommand encodes one command as a wire frame for the device:
//
//	ST300CMD;<unique_id>;02;<keyword>[;<arg>]\r
//
// The "02" slot mirrors the dialect's fixed command-channel marker.
func BuildCommand(uniqueID string, cmd *domain.Command) ([]byte, error) {
	if cmd.Type == TypeCustom {
		data := cmd.Payload["data"]
		if data == "" {
			return nil, fmt.Errorf("custom command %s has no payload data", cmd.CommandID)
		}
		return []byte(fmt.Sprintf("%s;%s;02;%s\r", cmdHeader, uniqueID, data)), nil
	}

	keyword, ok := suntechKeywords[cmd.Type]
	if !ok {
		return nil, fmt.Errorf("no dialect keyword for command type %q", cmd.Type)
	}

	frame := fmt.Sprintf("%s;%s;02;%s", cmdHeader, uniqueID, keyword)
	if cmd.Type == TypePositionPeriodic {
		freq := cmd.Payload["frequency"]
		if freq == "" {
			return nil, fmt.Errorf("positionPeriodic command %s has no frequency", cmd.CommandID)
		}
		frame += ";" + freq
	}
	return []byte(frame + "\r"), nil
}

// Ack is a device acknowledgement for the command in flight on its
// connection: ST300CMD;<unique_id>;<keyword>;<OK|ERR>[;detail]
type Ack struct {
	UniqueID string
	Keyword  string
	OK       bool
	Detail   string
}

// IsAck reports whether the line is a command acknowledgement rather than a
// telemetry frame. Cheap check so the server can route before decoding.
func IsAck(line string) bool {
	return strings.HasPrefix(line, cmdHeader+";")
}

// ParseAck decodes an acknowledgement frame.
func ParseAck(line string) (*Ack, error) {
	fields := strings.Split(strings.TrimRight(line, "\r\n"), ";")
	if len(fields) < 4 || fields[0] != cmdHeader {
		return nil, fmt.Errorf("%w: not an acknowledgement frame", ErrMalformedFields)
	}
	id, err := extractIdentifier(fields[1])
	if err != nil {
		return nil, err
	}
	ack := &Ack{
		UniqueID: id,
		Keyword:  fields[2],
		OK:       fields[3] == "OK",
	}
	if len(fields) > 4 {
		ack.Detail = strings.Join(fields[4:], ";")
	}
	return ack, nil
}
