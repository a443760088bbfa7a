package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

// Recorder captures state changes and rendered frames for debugging.
type Recorder struct {
	logFile  *os.File
	frameDir string
	frameNum int
	enabled  bool
}

// NewRecorder creates a recorder writing below dir. An empty dir uses the
// system temp directory. A recorder that cannot create its files is
// disabled.
func NewRecorder(dir string) *Recorder {
	if dir == "" {
		dir = os.TempDir()
	}
	recordDir := filepath.Join(dir, fmt.Sprintf("autocat-record-%d", time.Now().Unix()))
	if err := os.MkdirAll(recordDir, 0750); err != nil {
		return &Recorder{}
	}

	logFile, err := os.Create(filepath.Join(recordDir, "frames.log")) // #nosec G304 -- constructed path
	if err != nil {
		return &Recorder{}
	}

	r := &Recorder{
		enabled:  true,
		logFile:  logFile,
		frameDir: recordDir,
	}
	r.Log("Recorder started at %s", recordDir)
	return r
}

// Dir returns the directory frames are written to.
func (r *Recorder) Dir() string {
	return r.frameDir
}

// Frames returns the number of frames recorded.
func (r *Recorder) Frames() int {
	return r.frameNum
}

// RecordState captures the model after msg was handled.
func (r *Recorder) RecordState(m Model, msg tea.Msg) {
	if r == nil || !r.enabled {
		return
	}

	r.frameNum++
	active, open := m.slot.Active()

	r.Log("\n=== Frame %d ===", r.frameNum)
	r.Log("Time: %s", time.Now().Format("15:04:05.000"))
	r.Log("Message Type: %T", msg)
	r.Log("Generation: %d  Cards: %d  Cursor: %d  Busy: %d", m.gen, len(m.cards), m.cursor, m.busyCount())
	r.Log("Preview open: %v (index %d, pending %v)  Selected: %d", open, active.Index, m.slot.IsPending(), m.preview.Selection().Count())
	r.Log("Notice: %q  Confirm: %q", m.notice.Message(), m.confirm.Prompt())

	view := ansi.Strip(m.View())
	framePath := filepath.Join(r.frameDir, fmt.Sprintf("frame-%04d.txt", r.frameNum))
	if err := os.WriteFile(framePath, []byte(view), 0600); err != nil {
		r.Log("Error saving frame: %v", err)
	}
}

// Log writes to the log file.
func (r *Recorder) Log(format string, args ...any) {
	if r == nil || !r.enabled || r.logFile == nil {
		return
	}
	if _, err := fmt.Fprintf(r.logFile, format+"\n", args...); err != nil {
		return
	}
	_ = r.logFile.Sync()
}

// Close closes the recorder.
func (r *Recorder) Close() {
	if r == nil || r.logFile == nil {
		return
	}
	r.Log("Recording complete. %d frames captured in %s", r.frameNum, r.frameDir)
	_ = r.logFile.Close()
	r.logFile = nil
	r.enabled = false
}
