// Package resource owns every shading object and the handle namespace
// that makes them reachable from the public API. Handles are opaque,
// flat across object kinds, and resolve to a (kind, slot index) pair;
// slot indices are monotonic and never reused. Handle 0 and slot
// index 0 are never allocated.
package resource

import (
	"github.com/devblok/vgl/shader"
)

// Kind discriminates which object store a namespace entry refers to.
type Kind int

// Object kinds participating in the shading namespace.
const (
	ShaderKind Kind = iota + 1
	ProgramKind
)

// Entry ties a public handle to a slot in one of the object stores.
// A live entry never carries Index 0.
type Entry struct {
	Kind  Kind
	Index uint32
}

// Manager is the per-context resource manager: one slot-indexed store
// per object kind, the shared handle namespace, and the purge list of
// entities awaiting safe destruction. Not safe for concurrent use; a
// context is single threaded.
type Manager struct {
	shaders  map[uint32]*shader.Shader
	programs map[uint32]*shader.Program

	namespace  map[uint32]Entry
	nextHandle uint32

	nextShader  uint32
	nextProgram uint32

	purge []Entry
}

// NewManager creates an empty resource manager.
func NewManager() *Manager {
	return &Manager{
		shaders:     make(map[uint32]*shader.Shader),
		programs:    make(map[uint32]*shader.Program),
		namespace:   make(map[uint32]Entry),
		nextHandle:  1,
		nextShader:  1,
		nextProgram: 1,
	}
}

// AllocateShader creates a fresh shader entity and returns its slot
// index.
func (m *Manager) AllocateShader() uint32 {
	index := m.nextShader
	m.nextShader++
	m.shaders[index] = &shader.Shader{}
	return index
}

// Shader returns the entity at the given slot, nil when the slot is
// not occupied.
func (m *Manager) Shader(index uint32) *shader.Shader {
	return m.shaders[index]
}

// DeallocateShader physically destroys the entity at the given slot.
// The slot index is never handed out again.
func (m *Manager) DeallocateShader(index uint32) {
	delete(m.shaders, index)
}

// AllocateProgram creates a fresh program entity and returns its slot
// index.
func (m *Manager) AllocateProgram() uint32 {
	index := m.nextProgram
	m.nextProgram++
	m.programs[index] = &shader.Program{}
	return index
}

// Program returns the entity at the given slot, nil when the slot is
// not occupied.
func (m *Manager) Program(index uint32) *shader.Program {
	return m.programs[index]
}

// DeallocateProgram physically destroys the entity at the given slot,
// unpinning any shaders it still holds.
func (m *Manager) DeallocateProgram(index uint32) {
	if p := m.programs[index]; p != nil {
		p.DetachAll()
	}
	delete(m.programs, index)
}

// PushEntry wires a store slot into the namespace and returns the new
// public handle. Handles are monotonic; 0 is never returned.
func (m *Manager) PushEntry(e Entry) uint32 {
	handle := m.nextHandle
	m.nextHandle++
	m.namespace[handle] = e
	return handle
}

// HandleBound returns the exclusive upper bound of ever-allocated
// handles, for cheap rejection of out-of-range values.
func (m *Manager) HandleBound() uint32 {
	return m.nextHandle
}

// Exists reports whether the handle currently maps to an entry.
func (m *Manager) Exists(handle uint32) bool {
	_, ok := m.namespace[handle]
	return ok
}

// Resolve returns the entry for a handle.
func (m *Manager) Resolve(handle uint32) (Entry, bool) {
	e, ok := m.namespace[handle]
	return e, ok
}

// Erase removes the namespace mapping only; the underlying object is
// untouched. Called exactly once per physically-destroyed or purged
// object.
func (m *Manager) Erase(handle uint32) {
	delete(m.namespace, handle)
}

// Is reports whether the handle is live and refers to an occupied
// slot of the given kind. Never records an error.
func (m *Manager) Is(handle uint32, kind Kind) bool {
	e, ok := m.namespace[handle]
	return ok && e.Kind == kind && e.Index != 0
}

// ForEachShader visits every live shader entity, in no particular
// order. Used to propagate the compiler service retroactively.
func (m *Manager) ForEachShader(fn func(*shader.Shader)) {
	for _, s := range m.shaders {
		fn(s)
	}
}

// ForEachProgram visits every live program entity.
func (m *Manager) ForEachProgram(fn func(*shader.Program)) {
	for _, p := range m.programs {
		fn(p)
	}
}

// AddToPurge parks an entity whose handle is already erased but which
// is not yet provably safe to destroy. It stays allocated in its store
// until a later ReclaimPurged finds it free.
func (m *Manager) AddToPurge(e Entry) {
	m.purge = append(m.purge, e)
}

// PurgeCount returns the number of parked entities.
func (m *Manager) PurgeCount() int {
	return len(m.purge)
}

// ReclaimPurged destroys every parked entity that has become free for
// deletion, keeping the rest parked. Returns the number destroyed.
// Called at explicit synchronization points: flush and teardown.
func (m *Manager) ReclaimPurged() int {
	var kept []Entry
	destroyed := 0
	for _, e := range m.purge {
		if m.reclaim(e) {
			destroyed++
		} else {
			kept = append(kept, e)
		}
	}
	m.purge = kept
	return destroyed
}

func (m *Manager) reclaim(e Entry) bool {
	switch e.Kind {
	case ShaderKind:
		s := m.shaders[e.Index]
		if s == nil {
			return true
		}
		if !s.FreeForDeletion() {
			return false
		}
		m.DeallocateShader(e.Index)
	case ProgramKind:
		p := m.programs[e.Index]
		if p == nil {
			return true
		}
		if !p.FreeForDeletion() {
			return false
		}
		m.DeallocateProgram(e.Index)
	}
	return true
}

// Destroy tears the manager down at context teardown: parked entities
// are dropped unconditionally along with every store and the
// namespace.
func (m *Manager) Destroy() {
	m.ReclaimPurged()
	m.shaders = make(map[uint32]*shader.Shader)
	m.programs = make(map[uint32]*shader.Program)
	m.namespace = make(map[uint32]Entry)
	m.purge = nil
}
