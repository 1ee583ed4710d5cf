package psutil

import (
	"context"
	"time"

	psprocess "github.com/shirou/gopsutil/v3/process"
)

// Proc is a single entry of the process table.
type Proc interface {
	// PID returns the process ID.
	PID() int32

	// Name returns the name of the executable, e.g. chrome.exe.
	Name() (string, error)

	// Memory returns the resident memory of the process in bytes.
	Memory() (uint64, error)

	// Kill terminates the process forcefully.
	Kill() error
}

// Lister enumerates the process table.
type Lister interface {
	Processes() ([]Proc, error)
}

type systemLister struct {
	timeout time.Duration
}

// NewSystemLister returns a Lister for the processes of this host. Each
// enumeration is aborted after the given timeout. A timeout of 0 means no timeout.
func NewSystemLister(timeout time.Duration) Lister {
	return &systemLister{
		timeout: timeout,
	}
}

func (l *systemLister) Processes() ([]Proc, error) {
	ctx := context.Background()

	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	procs, err := psprocess.ProcessesWithContext(ctx)
	if err != nil {
		return nil, err
	}

	list := make([]Proc, 0, len(procs))

	for _, p := range procs {
		list = append(list, &process{
			proc: p,
		})
	}

	return list, nil
}

type process struct {
	proc *psprocess.Process
}

func (p *process) PID() int32 {
	return p.proc.Pid
}

func (p *process) Name() (string, error) {
	return p.proc.Name()
}

func (p *process) Memory() (uint64, error) {
	info, err := p.proc.MemoryInfo()
	if err != nil {
		return 0, err
	}

	return info.RSS, nil
}

func (p *process) Kill() error {
	return p.proc.Kill()
}
