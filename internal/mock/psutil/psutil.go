// Package psutil provides an in-memory process table for tests.
package psutil

import (
	"strings"
	"sync"

	"github.com/focusguard/core/psutil"
)

// MockInspector implements psutil.Inspector on a process table that the
// test controls. Terminate removes the matching processes.
type MockInspector struct {
	lock       sync.Mutex
	procs      []psutil.Process
	terminated []string
	nextPID    int32
}

func New(names ...string) *MockInspector {
	i := &MockInspector{
		nextPID: 100,
	}

	for _, name := range names {
		i.Run(name)
	}

	return i
}

// Run adds a process with the given name and returns its PID.
func (i *MockInspector) Run(name string) int32 {
	i.lock.Lock()
	defer i.lock.Unlock()

	i.nextPID++

	i.procs = append(i.procs, psutil.Process{
		PID:    i.nextPID,
		Name:   name,
		Memory: 1024 * 1024,
	})

	return i.nextPID
}

// Exit removes all processes with the given name.
func (i *MockInspector) Exit(name string) {
	i.lock.Lock()
	defer i.lock.Unlock()

	i.remove(name)
}

func (i *MockInspector) remove(name string) int {
	procs := i.procs[:0]
	n := 0

	for _, p := range i.procs {
		if strings.EqualFold(p.Name, name) {
			n++
			continue
		}

		procs = append(procs, p)
	}

	i.procs = procs

	return n
}

// Terminated returns the names Terminate has been called with.
func (i *MockInspector) Terminated() []string {
	i.lock.Lock()
	defer i.lock.Unlock()

	return append([]string{}, i.terminated...)
}

func (i *MockInspector) Find(name string) []psutil.Process {
	i.lock.Lock()
	defer i.lock.Unlock()

	procs := []psutil.Process{}

	for _, p := range i.procs {
		if strings.EqualFold(p.Name, name) {
			procs = append(procs, p)
		}
	}

	return procs
}

func (i *MockInspector) IsRunning(name string) bool {
	return len(i.Find(name)) != 0
}

func (i *MockInspector) Terminate(name string) psutil.TerminationResult {
	i.lock.Lock()
	defer i.lock.Unlock()

	i.terminated = append(i.terminated, name)

	n := i.remove(name)

	return psutil.TerminationResult{
		Matched: n,
		Killed:  n,
	}
}
