package ecs

// System is a unit of per-frame behaviour. Exported Query and Singleton fields
// on a system struct are bound to the scheduler's storage at registration, and
// any other fields persist between frames.
type System interface {
	Execute(frame *UpdateFrame)
}

// storageBinder is implemented by Query and Singleton.
type storageBinder interface {
	Init(storage *Storage)
}

// frameQuery is implemented by Query; the scheduler refreshes these before
// the owning system runs.
type frameQuery interface {
	Execute()
}
