package link

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"tracker-svr/internal/domain"
)

// Uplink is an optional NDJSON TCP feed of connectivity and position events
// to the external platform. Disabled when no address is configured; every
// send is best-effort and the caller never blocks on reconnects.
type Uplink struct {
	addr   string
	logger *slog.Logger

	mu   sync.Mutex
	conn net.Conn
}

// New returns a disabled uplink for an empty address.
func New(addr string, logger *slog.Logger) *Uplink {
	u := &Uplink{addr: addr, logger: logger.With("component", "uplink")}
	if addr == "" {
		logger.Info("uplink disabled (no address configured)")
		return u
	}
	go u.connectLoop()
	return u
}

func (u *Uplink) connectLoop() {
	for {
		c, err := net.Dial("tcp", u.addr)
		if err != nil {
			u.logger.Error("uplink dial failed", "addr", u.addr, "err", err)
			time.Sleep(5 * time.Second)
			continue
		}

		u.setConn(c)
		u.logger.Info("uplink connected", "remote", c.RemoteAddr().String())

		// Block until the peer closes; we only write on this link.
		buf := make([]byte, 1)
		for {
			if _, err := c.Read(buf); err != nil {
				break
			}
		}

		u.clearConn(c)
		u.logger.Warn("uplink connection closed, reconnecting")
		time.Sleep(2 * time.Second)
	}
}

func (u *Uplink) setConn(c net.Conn) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.conn = c
}

func (u *Uplink) clearConn(c net.Conn) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.conn == c {
		_ = u.conn.Close()
		u.conn = nil
	}
}

func (u *Uplink) sendNDJSON(v any) error {
	u.mu.Lock()
	c := u.conn
	u.mu.Unlock()
	if c == nil {
		return fmt.Errorf("uplink not connected")
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = c.Write(append(b, '\n'))
	return err
}

type deviceConnectPayload struct {
	DeviceConnect bool   `json:"device_connect"`
	UniqueID      string `json:"unique_id"`
	Registered    bool   `json:"registered"`
	RemoteAddr    string `json:"remote_addr,omitempty"`
}

type deviceDisconnectPayload struct {
	DeviceDisconnect bool   `json:"device_disconnect"`
	UniqueID         string `json:"unique_id"`
}

type positionPayload struct {
	UniqueID   string    `json:"unique_id"`
	Registered bool      `json:"registered"`
	RecordedAt time.Time `json:"recorded_at"`
	Latitude   float64   `json:"lat"`
	Longitude  float64   `json:"lon"`
	Speed      float64   `json:"spd"`
	Course     float64   `json:"crs"`
}

// SendDeviceConnect is called once a connection has identified its terminal.
func (u *Uplink) SendDeviceConnect(uniqueID string, registered bool, remoteAddr string) {
	if u.addr == "" {
		return
	}
	err := u.sendNDJSON(deviceConnectPayload{
		DeviceConnect: true,
		UniqueID:      uniqueID,
		Registered:    registered,
		RemoteAddr:    remoteAddr,
	})
	if err != nil {
		u.logger.Warn("send device_connect failed", "unique_id", uniqueID, "err", err)
	}
}

func (u *Uplink) SendDeviceDisconnect(uniqueID string) {
	if u.addr == "" {
		return
	}
	err := u.sendNDJSON(deviceDisconnectPayload{DeviceDisconnect: true, UniqueID: uniqueID})
	if err != nil {
		u.logger.Warn("send device_disconnect failed", "unique_id", uniqueID, "err", err)
	}
}

// SendPosition mirrors each persisted record to the platform feed.
func (u *Uplink) SendPosition(uniqueID string, registered bool, p *domain.Position) {
	if u.addr == "" || p == nil {
		return
	}
	err := u.sendNDJSON(positionPayload{
		UniqueID:   uniqueID,
		Registered: registered,
		RecordedAt: p.RecordedAt,
		Latitude:   p.Latitude,
		Longitude:  p.Longitude,
		Speed:      p.Speed,
		Course:     p.Course,
	})
	if err != nil {
		u.logger.Warn("send position failed", "unique_id", uniqueID, "err", err)
	}
}
