package api

import "github.com/focusguard/core/psutil"

// Process is a process that matched an app name
type Process struct {
	PID    int32  `json:"pid" format:"int32"`
	Name   string `json:"name"`
	Memory uint64 `json:"memory_bytes" format:"uint64"`
}

func (p *Process) Unmarshal(proc psutil.Process) {
	p.PID = proc.PID
	p.Name = proc.Name
	p.Memory = proc.Memory
}

// ProcessList is the result of a process lookup
type ProcessList struct {
	Name      string    `json:"name"`
	Running   bool      `json:"running"`
	Processes []Process `json:"processes"`
}
