// SPDX-License-Identifier: MIT

// Package device: Sim, the in-process simulated runtime. Sim backs device
// memory with ordinary Go slices behind integer handles, records every live
// allocation for leak assertions, and can inject a fault into the next
// matching call. It is the test double for the whole module and the backend
// of the demo driver; nothing in it touches real hardware.
package device

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Allocation describes one live device allocation held by Sim.
type Allocation struct {
	// ID uniquely tags the allocation across the Sim's lifetime, so a leak
	// report can tell two same-sized allocations apart.
	ID uuid.UUID

	// Ptr is the device address of the allocation.
	Ptr Ptr

	// Bytes is the allocation size as requested.
	Bytes int
}

// Sim is a simulated accelerator runtime. All state lives behind a single
// mutex; the container itself is single-threaded by contract, the lock only
// keeps concurrent *tests* honest.
//
// The zero value is not ready; use NewSim.
type Sim struct {
	mu     sync.Mutex
	next   Ptr                // handle counter; 0 stays the null address
	store  map[Ptr][]byte     // device address → backing storage
	allocs map[Ptr]Allocation // device address → bookkeeping record

	lastStatus Status // latched status of the most recent failure
	lastMsg    string // latched message of the most recent failure

	failOp     string // primitive the injected fault targets; "" = any
	failStatus Status // status of the injected fault
	failArmed  bool   // whether a fault is pending
}

// NewSim creates an empty simulated runtime.
func NewSim() *Sim {
	return &Sim{
		next:   1,
		store:  make(map[Ptr][]byte),
		allocs: make(map[Ptr]Allocation),
	}
}

// interface compliance
var _ Runtime = (*Sim)(nil)

// fail latches and returns a runtime failure. Callers hold s.mu.
func (s *Sim) fail(op string, st Status, msg string) error {
	s.lastStatus = st
	s.lastMsg = msg

	return &Error{Op: op, Status: st, Msg: msg}
}

// takeFault consumes a pending injected fault if it targets op.
// Callers hold s.mu.
func (s *Sim) takeFault(op string) error {
	if !s.failArmed || (s.failOp != "" && s.failOp != op) {
		return nil
	}
	s.failArmed = false

	return s.fail(op, s.failStatus, "injected fault")
}

// FailNext arms a fault: the next call to the primitive named op ("alloc",
// "free", "copy_to_device", "copy_from_device"; "" matches any) fails with
// status st. Exactly one call fails; the fault then disarms.
func (s *Sim) FailNext(op string, st Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failOp = op
	s.failStatus = st
	s.failArmed = true
}

// Alloc reserves bytes of simulated device memory.
// bytes == 0 is legal and returns a distinct non-null address.
// Complexity: O(bytes) for the backing slice.
func (s *Sim) Alloc(bytes int) (Ptr, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.takeFault("alloc"); err != nil {
		return 0, err
	}
	if bytes < 0 {
		return 0, s.fail("alloc", StatusInvalidValue, fmt.Sprintf("negative size %d", bytes))
	}

	p := s.next
	s.next++
	s.store[p] = make([]byte, bytes)
	s.allocs[p] = Allocation{ID: uuid.New(), Ptr: p, Bytes: bytes}

	return p, nil
}

// Free releases the allocation at p. Freeing the null address is a no-op;
// freeing an address the Sim does not know is StatusInvalidValue.
func (s *Sim) Free(p Ptr) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.takeFault("free"); err != nil {
		return err
	}
	if p.IsNull() {
		return nil
	}
	if _, ok := s.store[p]; !ok {
		return s.fail("free", StatusInvalidValue, fmt.Sprintf("unknown address 0x%x", uint64(p)))
	}
	delete(s.store, p)
	delete(s.allocs, p)

	return nil
}

// CopyToDevice copies len(src) bytes from host memory into the allocation
// at dst. The copy is synchronous and complete on return.
func (s *Sim) CopyToDevice(dst Ptr, src []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.takeFault("copy_to_device"); err != nil {
		return err
	}
	buf, ok := s.store[dst]
	if !ok {
		return s.fail("copy_to_device", StatusCopyFailed, fmt.Sprintf("unknown address 0x%x", uint64(dst)))
	}
	if len(src) > len(buf) {
		return s.fail("copy_to_device", StatusInvalidValue,
			fmt.Sprintf("copy of %d bytes overruns allocation of %d", len(src), len(buf)))
	}
	copy(buf, src)

	return nil
}

// CopyFromDevice copies len(dst) bytes from the allocation at src into host
// memory. The copy is synchronous and complete on return.
func (s *Sim) CopyFromDevice(dst []byte, src Ptr) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.takeFault("copy_from_device"); err != nil {
		return err
	}
	buf, ok := s.store[src]
	if !ok {
		return s.fail("copy_from_device", StatusCopyFailed, fmt.Sprintf("unknown address 0x%x", uint64(src)))
	}
	if len(dst) > len(buf) {
		return s.fail("copy_from_device", StatusInvalidValue,
			fmt.Sprintf("copy of %d bytes overruns allocation of %d", len(dst), len(buf)))
	}
	copy(dst, buf)

	return nil
}

// LastError reports the latched status and message of the most recent
// failure, or (StatusSuccess, "") when clean. The latch survives successful
// calls — mirroring "query last error" runtimes — and clears only on Reset.
func (s *Sim) LastError() (Status, string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.lastStatus, s.lastMsg
}

// Bytes exposes the live backing storage of the allocation at p. The
// returned slice aliases device memory: writes through it are writes to the
// device. This is the hook in-process kernels compute through.
func (s *Sim) Bytes(p Ptr) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	buf, ok := s.store[p]
	if !ok {
		return nil, &Error{Op: "map", Status: StatusInvalidValue,
			Msg: fmt.Sprintf("unknown address 0x%x", uint64(p))}
	}

	return buf, nil
}

// LiveAllocs returns a snapshot of every outstanding allocation, in no
// particular order. An empty result after a sequence of operations is the
// leak-freedom assertion tests rely on.
// Complexity: O(live allocations).
func (s *Sim) LiveAllocs() []Allocation {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Allocation, 0, len(s.allocs))
	for _, a := range s.allocs {
		out = append(out, a)
	}

	return out
}

// LiveBytes returns the total size of all outstanding allocations.
func (s *Sim) LiveBytes() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total int
	for _, a := range s.allocs {
		total += a.Bytes
	}

	return total
}

// Reset drops every allocation, disarms any pending fault, and clears the
// error latch, returning the Sim to its freshly constructed state.
func (s *Sim) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.store = make(map[Ptr][]byte)
	s.allocs = make(map[Ptr]Allocation)
	s.next = 1
	s.lastStatus = StatusSuccess
	s.lastMsg = ""
	s.failArmed = false
	s.failOp = ""
}
