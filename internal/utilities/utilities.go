package utilities

import (
	"log"
	"os"
	"path/filepath"
	"time"
)

// RawFrameLogger appends dropped or suspect wire frames to a per-day file so
// decode failures can be diagnosed from the raw bytes later.
type RawFrameLogger struct {
	dir string
}

func NewRawFrameLogger(dir string) *RawFrameLogger {
	return &RawFrameLogger{dir: dir}
}

// Append writes one line under <dir>/<prefix>_<yyyymmdd>.log. Failures are
// logged and swallowed: diagnostics must never break the ingest path.
func (l *RawFrameLogger) Append(prefix, message string) {
	if l == nil || l.dir == "" {
		return
	}
	if _, err := os.Stat(l.dir); os.IsNotExist(err) {
		if err := os.MkdirAll(l.dir, 0755); err != nil {
			log.Println("raw frame log dir:", err)
			return
		}
	}

	filename := filepath.Join(l.dir, prefix+"_"+time.Now().Format("20060102")+".log")
	f, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.Println("raw frame log open:", err)
		return
	}
	defer f.Close()

	line := time.Now().Format("15:04:05") + " - " + message + "\n"
	if _, err := f.WriteString(line); err != nil {
		log.Println("raw frame log write:", err)
	}
}
