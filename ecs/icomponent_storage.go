package ecs

import "iter"

// iComponentStorage is one type-erased column of an archetype.
type iComponentStorage interface {
	Append(item any) int
	Delete(index int)
	Get(index int) any
	Len() int
	Iter() iter.Seq[int]
}
