package dispatcher

import "sync"

// inflightTable enforces at most one in-flight send per device. The token
// is held from transmission until acknowledgement, timeout redrive, or
// expiration, so command bytes for one terminal never interleave.
type inflightTable struct {
	mu       sync.Mutex
	byDevice map[string]string // device unique_id -> command id
}

func newInflightTable() *inflightTable {
	return &inflightTable{byDevice: make(map[string]string)}
}

// TryAcquire takes the device token. False means another command for the
// same terminal is still in flight.
func (t *inflightTable) TryAcquire(uniqueID, commandID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, busy := t.byDevice[uniqueID]; busy {
		return false
	}
	t.byDevice[uniqueID] = commandID
	return true
}

func (t *inflightTable) Release(uniqueID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.byDevice, uniqueID)
}

// ReleaseCommand drops whichever device token holds the command, for paths
// that only know the command id (expiration sweep).
func (t *inflightTable) ReleaseCommand(commandID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for uid, cid := range t.byDevice {
		if cid == commandID {
			delete(t.byDevice, uid)
			return
		}
	}
}
