// Package playback replays animation frames with play, pause and restart controls.
package playback

import (
	"fmt"
	"strings"
	"sync"

	"github.com/sebasr/f1-telemetry-viewer/internal/models"
)

// Command is a control message sent by a client
type Command string

const (
	CommandPlay    Command = "play"
	CommandPause   Command = "pause"
	CommandRestart Command = "restart"
)

// ParseCommand parses a control message
func ParseCommand(s string) (Command, error) {
	switch c := Command(strings.ToLower(strings.TrimSpace(s))); c {
	case CommandPlay, CommandPause, CommandRestart:
		return c, nil
	default:
		return "", fmt.Errorf("unknown playback command %q", s)
	}
}

// Position is the state pushed to clients after each step
type Position struct {
	Index int     `json:"index"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Z     float64 `json:"z"`
	Done  bool    `json:"done"`
}

// Player walks a fixed frame list. It is safe for concurrent use.
type Player struct {
	mu      sync.Mutex
	frames  []models.AnimationFrame
	next    int
	playing bool
}

// NewPlayer creates a paused player positioned before the first frame
func NewPlayer(frames []models.AnimationFrame) *Player {
	return &Player{frames: frames}
}

// Apply executes a command
func (p *Player) Apply(cmd Command) {
	switch cmd {
	case CommandPlay:
		p.Play()
	case CommandPause:
		p.Pause()
	case CommandRestart:
		p.Restart()
	}
}

// Play resumes from the current frame. It has no effect once all frames were shown.
func (p *Player) Play() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.next < len(p.frames) {
		p.playing = true
	}
}

// Pause stops at the current frame
func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.playing = false
}

// Restart rewinds to the first frame and plays
func (p *Player) Restart() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.next = 0
	p.playing = len(p.frames) > 0
}

// Playing reports whether Tick advances
func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

// Done reports whether every frame has been shown
func (p *Player) Done() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.next >= len(p.frames)
}

// Len returns the number of frames
func (p *Player) Len() int {
	return len(p.frames)
}

// Tick advances one frame while playing. ok is false when paused or finished.
func (p *Player) Tick() (pos Position, ok bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.playing || p.next >= len(p.frames) {
		p.playing = false
		return Position{}, false
	}

	frame := p.frames[p.next]
	p.next++
	if p.next == len(p.frames) {
		p.playing = false
	}

	last := frame.Last()
	return Position{
		Index: frame.Index,
		X:     last.X,
		Y:     last.Y,
		Z:     last.Z,
		Done:  p.next == len(p.frames),
	}, true
}
