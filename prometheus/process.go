package prometheus

import (
	"github.com/focusguard/core/psutil"
	"github.com/focusguard/core/session"

	"github.com/prometheus/client_golang/prometheus"
)

// ActiveReader provides the running session of an engine.
type ActiveReader interface {
	Active() (session.Handle, bool)
}

type processCollector struct {
	core      string
	reader    ActiveReader
	inspector psutil.Inspector

	countDesc  *prometheus.Desc
	memoryDesc *prometheus.Desc
}

// NewProcessCollector reports the processes of the app that is watched by the running session.
func NewProcessCollector(core string, r ActiveReader, i psutil.Inspector) prometheus.Collector {
	return &processCollector{
		core:      core,
		reader:    r,
		inspector: i,
		countDesc: prometheus.NewDesc(
			"session_app_processes",
			"Number of processes of the app watched by the running session",
			[]string{"core", "app"}, nil),
		memoryDesc: prometheus.NewDesc(
			"session_app_memory_bytes",
			"Resident memory of the app watched by the running session",
			[]string{"core", "app"}, nil),
	}
}

func (c *processCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.countDesc
	ch <- c.memoryDesc
}

func (c *processCollector) Collect(ch chan<- prometheus.Metric) {
	h, ok := c.reader.Active()
	if !ok {
		return
	}

	app := h.Info().App
	procs := c.inspector.Find(app)

	memory := uint64(0)
	for _, p := range procs {
		memory += p.Memory
	}

	ch <- prometheus.MustNewConstMetric(c.countDesc, prometheus.GaugeValue, float64(len(procs)), c.core, app)
	ch <- prometheus.MustNewConstMetric(c.memoryDesc, prometheus.GaugeValue, float64(memory), c.core, app)
}
