package renderer

import (
	"fmt"
)

// MaxObjectCount bounds how many objects can hold shader state at once.
const MaxObjectCount = 1024

// MaxInFlightFrames is how many frames may be recorded before the first one
// completes; descriptor bookkeeping is tracked per in-flight frame.
const MaxInFlightFrames = 3

// The object group holds two descriptors: the material uniform at slot 0 and
// the combined image-sampler at slot 1.
const perObjectDescriptorCount = 2

const (
	MaterialDescriptor = 0
	TextureDescriptor  = 1
)

// descriptorState remembers, per in-flight frame, the generation of the
// resource last written into a descriptor. Zero means never written.
type descriptorState struct {
	generations [MaxInFlightFrames]uint32
}

type objectState struct {
	inUse       bool
	descriptors [perObjectDescriptorCount]descriptorState
}

// ObjectStates hands out per-object shader-state slots and tracks which
// descriptors are stale. Released ids go on a free list and are reused.
type ObjectStates struct {
	states [MaxObjectCount]objectState
	next   uint32
	free   []uint32
}

func NewObjectStates() *ObjectStates {
	return &ObjectStates{}
}

// Acquire reserves a fresh object slot. All its descriptors start stale.
func (s *ObjectStates) Acquire() (uint32, error) {
	var id uint32
	if n := len(s.free); n > 0 {
		id = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		if s.next >= MaxObjectCount {
			return 0, fmt.Errorf("object shader state exhausted (max %d objects)", MaxObjectCount)
		}
		id = s.next
		s.next++
	}
	s.states[id] = objectState{inUse: true}
	return id, nil
}

// Release returns a slot to the free list and clears its descriptor
// generations.
func (s *ObjectStates) Release(id uint32) error {
	if id >= MaxObjectCount || !s.states[id].inUse {
		return fmt.Errorf("object id %d is not acquired", id)
	}
	s.states[id] = objectState{}
	s.free = append(s.free, id)
	return nil
}

func (s *ObjectStates) check(id uint32, descriptor, frameIndex int) error {
	if id >= MaxObjectCount || !s.states[id].inUse {
		return fmt.Errorf("object id %d is not acquired", id)
	}
	if descriptor < 0 || descriptor >= perObjectDescriptorCount {
		return fmt.Errorf("descriptor index %d out of range", descriptor)
	}
	if frameIndex < 0 || frameIndex >= MaxInFlightFrames {
		return fmt.Errorf("frame index %d out of range", frameIndex)
	}
	return nil
}

// NeedsUpdate reports whether the descriptor must be re-recorded for the
// given in-flight frame because the bound resource's generation moved on.
func (s *ObjectStates) NeedsUpdate(id uint32, descriptor, frameIndex int, generation uint32) (bool, error) {
	if err := s.check(id, descriptor, frameIndex); err != nil {
		return false, err
	}
	return s.states[id].descriptors[descriptor].generations[frameIndex] != generation, nil
}

// MarkUpdated records that the descriptor now holds the resource at the
// given generation for the given in-flight frame.
func (s *ObjectStates) MarkUpdated(id uint32, descriptor, frameIndex int, generation uint32) error {
	if err := s.check(id, descriptor, frameIndex); err != nil {
		return err
	}
	s.states[id].descriptors[descriptor].generations[frameIndex] = generation
	return nil
}

// MarkStale forces a descriptor to be re-recorded on every in-flight frame,
// used when an object falls back to the default texture.
func (s *ObjectStates) MarkStale(id uint32, descriptor int) error {
	if err := s.check(id, descriptor, 0); err != nil {
		return err
	}
	s.states[id].descriptors[descriptor] = descriptorState{}
	return nil
}
