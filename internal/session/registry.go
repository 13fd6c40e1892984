package session

import "sync"

// Registry is the process-wide directory of rooms. Rooms are created
// lazily on first reference and live for the process lifetime; all state
// is ephemeral.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*Room
}

func NewRegistry() *Registry {
	return &Registry{
		rooms: make(map[string]*Room),
	}
}

// GetOrCreate returns the room, registering a new one if the name is
// unknown. The double check under the write lock guarantees exactly one
// Room ever exists per name, even under concurrent first joins. It
// reports whether a new room was created.
func (g *Registry) GetOrCreate(name string) (*Room, bool) {
	g.mu.RLock()
	r, ok := g.rooms[name]
	g.mu.RUnlock()
	if ok {
		return r, false
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if r, ok := g.rooms[name]; ok {
		return r, false
	}

	r = newRoom(name)
	g.rooms[name] = r
	return r, true
}

// Get is the non-creating lookup used by every operation other than
// join, so stale or mistyped room names fail instead of spawning empty
// rooms.
func (g *Registry) Get(name string) (*Room, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	r, ok := g.rooms[name]
	return r, ok
}

// FindByConnection scans all rooms for the one holding the connection.
// Disconnect events carry no room name, and this runs once per
// disconnect over a small number of rooms, so a linear scan is fine.
func (g *Registry) FindByConnection(connectionID string) (*Room, *User, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	for _, r := range g.rooms {
		if u, ok := r.User(connectionID); ok {
			return r, u, true
		}
	}
	return nil, nil, false
}
