package engine

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"sync"
)

// Frame is one per-tick sample in a session file: the full derived
// status plus the scenario that produced it. Events themselves are
// never written; replay works from the derived numbers alone.
type Frame struct {
	Scenario string `json:"scenario"`
	Status   Status `json:"status"`
}

// Recorder writes JSON-lines frames to a session file.
type Recorder struct {
	writer *json.Encoder
	mu     sync.Mutex
}

// NewRecorder creates a recorder that writes one frame per line to w.
func NewRecorder(w io.Writer) *Recorder {
	return &Recorder{writer: json.NewEncoder(w)}
}

// Record appends a frame. Encode errors don't interrupt the session.
func (r *Recorder) Record(f Frame) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.writer.Encode(f); err != nil {
		// Log encode error but don't fail the tick
		_ = err
	}
}

// Player replays recorded frames in order, repeating the last one once
// the file runs out so a paused replay keeps rendering.
type Player struct {
	frames []Frame
	idx    int
	mu     sync.Mutex
}

// NewPlayer loads a session file (JSON lines), skipping malformed lines.
func NewPlayer(r io.Reader) (*Player, error) {
	sc := bufio.NewScanner(r)
	// Frames with a full alert log run well past the default line limit.
	sc.Buffer(make([]byte, 64*1024), 8*1024*1024)
	var frames []Frame
	for sc.Scan() {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		var f Frame
		if err := json.Unmarshal(line, &f); err != nil {
			// Skip malformed lines
			continue
		}
		frames = append(frames, f)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return &Player{frames: frames}, nil
}

// Tick returns the next frame, or the last frame once exhausted.
// ok is false only when the file held no frames at all.
func (p *Player) Tick() (Frame, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.frames) == 0 {
		return Frame{}, false
	}
	if p.idx >= len(p.frames) {
		return p.frames[len(p.frames)-1], true
	}
	f := p.frames[p.idx]
	p.idx++
	return f, true
}

// Len returns the number of frames available.
func (p *Player) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.frames)
}

// Index returns the next frame index.
func (p *Player) Index() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.idx
}

// Seek jumps to a frame index, clamped to the file, and returns it.
func (p *Player) Seek(i int) (Frame, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.frames) == 0 {
		return Frame{}, false
	}
	if i < 0 {
		i = 0
	}
	if i >= len(p.frames) {
		i = len(p.frames) - 1
	}
	p.idx = i
	f := p.frames[p.idx]
	p.idx++
	return f, true
}
