package ecs

import (
	"iter"
	"reflect"
)

// ComponentRegistry records which component types a Storage may hold and how
// to build a column for each.
type ComponentRegistry struct {
	factories map[reflect.Type]func() iComponentStorage
}

// NewComponentRegistry creates an empty registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() iComponentStorage),
	}
}

// RegisterComponent makes T usable as a component in storages built on r.
func RegisterComponent[T any](r *ComponentRegistry) {
	r.factories[reflect.TypeFor[T]()] = func() iComponentStorage {
		return &genericComponentStorage[T]{}
	}
}

func (r *ComponentRegistry) getFactory(t reflect.Type) func() iComponentStorage {
	return r.factories[t]
}

const genericBlockSize = 64

// genericComponentStorage keeps values of T in fixed-size blocks. Blocks are
// allocated individually so that a pointer handed out by Get stays valid
// while later blocks are appended.
type genericComponentStorage[T any] struct {
	blocks    []*[genericBlockSize]T
	filled    []*[genericBlockSize]bool
	freeSlots []int
	nextIndex int
	live      int
}

func (cs *genericComponentStorage[T]) Append(item any) int {
	var value T
	switch v := item.(type) {
	case *T:
		value = *v
	case T:
		value = v
	default:
		return -1
	}

	var index int
	if n := len(cs.freeSlots); n > 0 {
		index = cs.freeSlots[n-1]
		cs.freeSlots = cs.freeSlots[:n-1]
	} else {
		index = cs.nextIndex
		cs.nextIndex++
		if index/genericBlockSize >= len(cs.blocks) {
			cs.blocks = append(cs.blocks, new([genericBlockSize]T))
			cs.filled = append(cs.filled, new([genericBlockSize]bool))
		}
	}

	blockIdx, slotIdx := index/genericBlockSize, index%genericBlockSize
	cs.blocks[blockIdx][slotIdx] = value
	cs.filled[blockIdx][slotIdx] = true
	cs.live++
	return index
}

func (cs *genericComponentStorage[T]) Get(index int) any {
	if !cs.has(index) {
		return nil
	}
	return &cs.blocks[index/genericBlockSize][index%genericBlockSize]
}

func (cs *genericComponentStorage[T]) Delete(index int) {
	if !cs.has(index) {
		return
	}

	blockIdx, slotIdx := index/genericBlockSize, index%genericBlockSize
	var zero T
	cs.blocks[blockIdx][slotIdx] = zero
	cs.filled[blockIdx][slotIdx] = false
	cs.freeSlots = append(cs.freeSlots, index)
	cs.live--
}

func (cs *genericComponentStorage[T]) Len() int {
	return cs.live
}

func (cs *genericComponentStorage[T]) Iter() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 0; i < cs.nextIndex; i++ {
			if cs.filled[i/genericBlockSize][i%genericBlockSize] {
				if !yield(i) {
					return
				}
			}
		}
	}
}

func (cs *genericComponentStorage[T]) has(index int) bool {
	if index < 0 || index >= cs.nextIndex {
		return false
	}
	return cs.filled[index/genericBlockSize][index%genericBlockSize]
}
