package ecs

// EntityId packs the archetype ID into the upper 32 bits and the slot index
// into the lower 32 bits.
type EntityId uint64

// NewEntityId builds an EntityId from an archetype ID and a slot index.
func NewEntityId(archetypeId uint32, index uint32) EntityId {
	return EntityId(uint64(archetypeId)<<32 | uint64(index))
}

// ArchetypeId returns the archetype half of the ID.
func (e EntityId) ArchetypeId() uint32 {
	return uint32(e >> 32)
}

// Index returns the slot half of the ID.
func (e EntityId) Index() uint32 {
	return uint32(e & 0xFFFFFFFF)
}

// EntityRef is a long-lived handle to an entity. The storage keeps it pointed
// at the right slot and zeroes Id once the entity is deleted, so holders such
// as a moon tracking its parent planet never dereference a dead slot.
type EntityRef struct {
	Id        EntityId
	Archetype *Archetype
}
