package resource_test

import (
	"testing"

	"github.com/devblok/vgl/resource"
)

func TestHandleZeroNeverAllocated(t *testing.T) {
	m := resource.NewManager()
	for i := 0; i < 16; i++ {
		index := m.AllocateShader()
		if index == 0 {
			t.Fatal("slot index 0 allocated")
		}
		handle := m.PushEntry(resource.Entry{Kind: resource.ShaderKind, Index: index})
		if handle == 0 {
			t.Fatal("handle 0 allocated")
		}
	}
	if m.Exists(0) {
		t.Error("handle 0 resolves")
	}
}

func TestFlatNamespaceAcrossKinds(t *testing.T) {
	m := resource.NewManager()
	sh := m.PushEntry(resource.Entry{Kind: resource.ShaderKind, Index: m.AllocateShader()})
	pr := m.PushEntry(resource.Entry{Kind: resource.ProgramKind, Index: m.AllocateProgram()})

	if sh == pr {
		t.Fatal("shader and program share a handle")
	}
	if !m.Is(sh, resource.ShaderKind) || m.Is(sh, resource.ProgramKind) {
		t.Error("shader handle kind tag wrong")
	}
	if !m.Is(pr, resource.ProgramKind) || m.Is(pr, resource.ShaderKind) {
		t.Error("program handle kind tag wrong")
	}

	e, ok := m.Resolve(sh)
	if !ok || e.Kind != resource.ShaderKind || e.Index == 0 {
		t.Errorf("resolve(%d) = %+v, %v", sh, e, ok)
	}
	if m.Shader(e.Index) == nil {
		t.Error("resolved slot is unoccupied")
	}
}

func TestEraseRemovesMappingOnly(t *testing.T) {
	m := resource.NewManager()
	index := m.AllocateShader()
	handle := m.PushEntry(resource.Entry{Kind: resource.ShaderKind, Index: index})

	m.Erase(handle)
	if m.Exists(handle) {
		t.Error("erased handle still resolves")
	}
	if m.Shader(index) == nil {
		t.Error("erase destroyed the underlying object")
	}
}

func TestSlotIndicesNeverReused(t *testing.T) {
	m := resource.NewManager()
	first := m.AllocateShader()
	m.DeallocateShader(first)
	second := m.AllocateShader()
	if second == first {
		t.Errorf("slot index %d reused after deallocation", first)
	}
}

func TestPurgeListReclaim(t *testing.T) {
	m := resource.NewManager()
	index := m.AllocateShader()
	handle := m.PushEntry(resource.Entry{Kind: resource.ShaderKind, Index: index})
	s := m.Shader(index)

	// Pin the shader, as a program attachment would.
	s.Ref()
	s.MarkForDeletion()

	m.Erase(handle)
	m.AddToPurge(resource.Entry{Kind: resource.ShaderKind, Index: index})

	if n := m.ReclaimPurged(); n != 0 {
		t.Errorf("reclaimed %d pinned entities", n)
	}
	if m.Shader(index) == nil {
		t.Fatal("pinned entity destroyed while parked")
	}

	s.Unref()
	if n := m.ReclaimPurged(); n != 1 {
		t.Errorf("reclaimed %d entities, want 1", n)
	}
	if m.Shader(index) != nil {
		t.Error("reclaimed entity still in store")
	}
	if m.PurgeCount() != 0 {
		t.Error("purge list not drained")
	}
}

func TestDestroyDropsEverything(t *testing.T) {
	m := resource.NewManager()
	index := m.AllocateShader()
	handle := m.PushEntry(resource.Entry{Kind: resource.ShaderKind, Index: index})
	m.AllocateProgram()

	m.Destroy()
	if m.Exists(handle) {
		t.Error("namespace survived Destroy")
	}
	if m.Shader(index) != nil {
		t.Error("store survived Destroy")
	}
}
