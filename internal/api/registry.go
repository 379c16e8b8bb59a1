package api

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// TableID identifies a callback table. The native side only ever sees it
// inside the context cell; IDs start at 1 so the zero value flags "no table".
type TableID uint64

// TableKind is the object category a table belongs to. It is stored in the
// context cell so a locator can refuse cells of the wrong category.
type TableKind uint32

const (
	IntegratorTable TableKind = iota + 1
	BackwardTable
	InnerStepperTable
	NonlinSolTable
)

func (k TableKind) String() string {
	switch k {
	case IntegratorTable:
		return "integrator"
	case BackwardTable:
		return "backward"
	case InnerStepperTable:
		return "inner_stepper"
	case NonlinSolTable:
		return "nonlinear_solver"
	default:
		return fmt.Sprintf("kind(%d)", uint32(k))
	}
}

// entry is what the registry keeps per table.
type entry struct {
	id    TableID
	kind  TableKind
	table any

	mu    sync.Mutex
	fault error
}

// recordFault keeps the first interop failure seen since the last takeFault.
func (e *entry) recordFault(err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.fault == nil {
		e.fault = err
	}
}

func (e *entry) takeFault() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	err := e.fault
	e.fault = nil
	return err
}

// tables contains one entry per live callback table, indexed by TableID.
var tables sync.Map

// this is a global counter for creating table IDs
var (
	latestTableID      uint64
	latestTableIDMutex sync.Mutex
)

var (
	totalTablesCreated  uint64
	totalTablesReleased uint64
)

// orphanFaults holds failures that could not be attributed to a table, i.e.
// MissingCallbackTable, keyed by the OS thread the hook ran on. A hook runs
// on the thread of the native call that reached it, and drivers keep their
// goroutine on one thread (see collect), so a driver only sees its own.
var (
	orphanFaults      = make(map[uint64]error)
	orphanFaultsMutex sync.Mutex
)

// nextTableID reserves a new table ID. The ID is not visible in the registry
// until storeTable is called.
func nextTableID() TableID {
	latestTableIDMutex.Lock()
	defer latestTableIDMutex.Unlock()
	latestTableID += 1
	return TableID(latestTableID)
}

// storeTable makes table reachable under id.
func storeTable(id TableID, kind TableKind, table any) *entry {
	e := &entry{id: id, kind: kind, table: table}
	tables.Store(id, e)
	atomic.AddUint64(&totalTablesCreated, 1)
	currentObserver().TableAllocated(kind.String())
	return e
}

// retrieveTable recovers a table entry based on its ID.
func retrieveTable(id TableID) (*entry, bool) {
	loaded, found := tables.Load(id)
	if !found {
		return nil, false
	}
	return loaded.(*entry), true // panics if wrong type was found
}

// releaseTable removes the entry. It reports false when the table was already
// released or never existed, so every table is released at most once.
func releaseTable(id TableID) bool {
	removed, didExist := tables.LoadAndDelete(id)
	if !didExist {
		return false
	}
	atomic.AddUint64(&totalTablesReleased, 1)
	currentObserver().TableReleased(removed.(*entry).kind.String())
	return true
}

// TableStats returns how many callback tables were created and released
// since the process started.
func TableStats() (created, released uint64) {
	return atomic.LoadUint64(&totalTablesCreated), atomic.LoadUint64(&totalTablesReleased)
}

func recordOrphanFault(err error) {
	thread := currentThread()
	orphanFaultsMutex.Lock()
	defer orphanFaultsMutex.Unlock()
	if _, ok := orphanFaults[thread]; !ok {
		orphanFaults[thread] = err
	}
}

// takeFault returns the first pending interop failure among the given tables,
// falling back to the orphan slot of the calling thread. All inspected slots
// are cleared. Callers must be locked to their OS thread.
func takeFault(ids ...TableID) error {
	var first error
	for _, id := range ids {
		if e, ok := retrieveTable(id); ok {
			if err := e.takeFault(); err != nil && first == nil {
				first = err
			}
		}
	}
	thread := currentThread()
	orphanFaultsMutex.Lock()
	defer orphanFaultsMutex.Unlock()
	if first == nil {
		first = orphanFaults[thread]
	}
	delete(orphanFaults, thread)
	return first
}
