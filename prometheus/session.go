package prometheus

import (
	"github.com/focusguard/core/session"

	"github.com/prometheus/client_golang/prometheus"
)

// StatsReader provides the counters of a session engine.
type StatsReader interface {
	Stats() session.Stats
}

type sessionCollector struct {
	core   string
	reader StatsReader

	totalDesc     *prometheus.Desc
	outcomeDesc   *prometheus.Desc
	activeDesc    *prometheus.Desc
	logErrorsDesc *prometheus.Desc
}

func NewSessionCollector(core string, r StatsReader) prometheus.Collector {
	return &sessionCollector{
		core:   core,
		reader: r,
		totalDesc: prometheus.NewDesc(
			"session_total",
			"Total number of started sessions",
			[]string{"core"}, nil),
		outcomeDesc: prometheus.NewDesc(
			"session_ended_total",
			"Total number of ended sessions by outcome",
			[]string{"core", "outcome"}, nil),
		activeDesc: prometheus.NewDesc(
			"session_active",
			"Whether a session is currently running",
			[]string{"core"}, nil),
		logErrorsDesc: prometheus.NewDesc(
			"session_log_errors_total",
			"Total number of failed writes to the session log",
			[]string{"core"}, nil),
	}
}

func (c *sessionCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.totalDesc
	ch <- c.outcomeDesc
	ch <- c.activeDesc
	ch <- c.logErrorsDesc
}

func (c *sessionCollector) Collect(ch chan<- prometheus.Metric) {
	stats := c.reader.Stats()

	active := 0.0
	if stats.Active {
		active = 1
	}

	ch <- prometheus.MustNewConstMetric(c.totalDesc, prometheus.CounterValue, float64(stats.Started), c.core)
	ch <- prometheus.MustNewConstMetric(c.outcomeDesc, prometheus.CounterValue, float64(stats.TimedOut), c.core, string(session.OutcomeTimedOut))
	ch <- prometheus.MustNewConstMetric(c.outcomeDesc, prometheus.CounterValue, float64(stats.VanishedEarly), c.core, string(session.OutcomeVanishedEarly))
	ch <- prometheus.MustNewConstMetric(c.outcomeDesc, prometheus.CounterValue, float64(stats.Cancelled), c.core, string(session.OutcomeCancelled))
	ch <- prometheus.MustNewConstMetric(c.activeDesc, prometheus.GaugeValue, active, c.core)
	ch <- prometheus.MustNewConstMetric(c.logErrorsDesc, prometheus.CounterValue, float64(stats.LogErrors), c.core)
}
