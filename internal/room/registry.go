package room

import (
	"crypto/rand"
	"errors"
	"strings"
	"sync"
)

const (
	codeAlphabet    = "abcdefghijklmnopqrstuvwxyz"
	codeLength      = 4
	maxCodeAttempts = 100
)

var (
	// ErrRoomNotFound is returned by Get for unknown codes.
	ErrRoomNotFound = errors.New("room not found")
	// ErrCodeSpaceExhausted is returned when code generation keeps
	// colliding. With 26^4 codes this takes hundreds of thousands of
	// live rooms to hit, but it must fail cleanly rather than spin.
	ErrCodeSpaceExhausted = errors.New("room code space exhausted")
)

// Registry owns every room for the process lifetime. Rooms are never
// deleted; callers share them through the pointers handed out here.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*Room
}

func NewRegistry() *Registry {
	return &Registry{rooms: make(map[string]*Room)}
}

// Create makes a new room from newline-separated option text under a
// fresh unique code.
func (g *Registry) Create(rawOptions string) (*Room, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	code, err := g.freeCode()
	if err != nil {
		return nil, err
	}
	rm := newRoom(code, rawOptions)
	g.rooms[code] = rm
	return rm, nil
}

// Get looks a room up by code. Codes are matched case-insensitively.
func (g *Registry) Get(code string) (*Room, error) {
	code = strings.ToLower(strings.TrimSpace(code))

	g.mu.RLock()
	rm, ok := g.rooms[code]
	g.mu.RUnlock()

	if !ok {
		return nil, ErrRoomNotFound
	}
	return rm, nil
}

// Len reports how many rooms exist.
func (g *Registry) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.rooms)
}

// freeCode generates an unused code, bounded by maxCodeAttempts.
// Callers must hold the write lock.
func (g *Registry) freeCode() (string, error) {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code := randomCode()
		if _, taken := g.rooms[code]; !taken {
			return code, nil
		}
	}
	return "", ErrCodeSpaceExhausted
}

func randomCode() string {
	b := make([]byte, codeLength)
	rand.Read(b)
	for i := range b {
		b[i] = codeAlphabet[int(b[i])%len(codeAlphabet)]
	}
	return string(b)
}
