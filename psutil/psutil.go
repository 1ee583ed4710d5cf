// Package psutil answers whether a program is running and terminates
// programs by name.
package psutil

import (
	"strings"

	"github.com/focusguard/core/log"
)

// Process describes a process that matched a name.
type Process struct {
	PID    int32
	Name   string
	Memory uint64 // bytes, 0 if unknown
}

// TerminationResult reports how many processes matched a name and how
// many of them have been killed.
type TerminationResult struct {
	Matched int
	Killed  int
}

// Inspector queries the process table. Names are compared case-insensitive
// and must match the whole executable name. All operations are best effort,
// processes that vanish or can't be accessed during a query are skipped.
type Inspector interface {
	// Find returns all processes with the given name.
	Find(name string) []Process

	// IsRunning returns whether at least one process with the given name exists.
	// If the process table can't be read, false is returned.
	IsRunning(name string) bool

	// Terminate kills all processes with the given name. Failures to kill a
	// process are not reported as error, only in the result.
	Terminate(name string) TerminationResult
}

type Config struct {
	// Lister enumerates the processes. If nil, the processes of this host are used.
	Lister Lister

	// For logging, optional
	Logger log.Logger
}

type inspector struct {
	lister Lister
	logger log.Logger
}

func New(config Config) Inspector {
	i := &inspector{
		lister: config.Lister,
		logger: config.Logger,
	}

	if i.lister == nil {
		i.lister = NewSystemLister(0)
	}

	if i.logger == nil {
		i.logger = log.New("")
	}

	return i
}

// matches calls fn for every process with the given name until fn returns false.
func (i *inspector) matches(name string, fn func(p Proc, pname string) bool) {
	if len(name) == 0 {
		return
	}

	procs, err := i.lister.Processes()
	if err != nil {
		i.logger.Warn().WithError(err).Log("Listing processes failed")
		return
	}

	for _, p := range procs {
		pname, err := p.Name()
		if err != nil {
			continue
		}

		if !strings.EqualFold(pname, name) {
			continue
		}

		if !fn(p, pname) {
			return
		}
	}
}

func (i *inspector) Find(name string) []Process {
	list := []Process{}

	i.matches(name, func(p Proc, pname string) bool {
		mem, _ := p.Memory()

		list = append(list, Process{
			PID:    p.PID(),
			Name:   pname,
			Memory: mem,
		})

		return true
	})

	return list
}

func (i *inspector) IsRunning(name string) bool {
	running := false

	i.matches(name, func(p Proc, pname string) bool {
		running = true
		return false
	})

	return running
}

func (i *inspector) Terminate(name string) TerminationResult {
	result := TerminationResult{}

	i.matches(name, func(p Proc, pname string) bool {
		result.Matched++

		if err := p.Kill(); err != nil {
			i.logger.Debug().WithFields(log.Fields{
				"pid":  p.PID(),
				"name": pname,
			}).WithError(err).Log("Killing process failed")
			return true
		}

		result.Killed++

		return true
	})

	i.logger.Debug().WithFields(log.Fields{
		"name":    name,
		"matched": result.Matched,
		"killed":  result.Killed,
	}).Log("Terminated processes")

	return result
}
