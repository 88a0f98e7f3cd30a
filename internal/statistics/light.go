package statistics

import (
	"github.com/markusressel/dim2go/internal/light"
	"github.com/prometheus/client_golang/prometheus"
)

const lightSubsystem = "light"

type LightCollector struct {
	runners []*light.Runner

	level           *prometheus.Desc
	target          *prometheus.Desc
	output          *prometheus.Desc
	ramping         *prometheus.Desc
	pulsing         *prometheus.Desc
	on              *prometheus.Desc
	tickIntervalMax *prometheus.Desc
}

func NewLightCollector(runners []*light.Runner) *LightCollector {
	return &LightCollector{
		runners: runners,
		level: prometheus.NewDesc(prometheus.BuildFQName(namespace, lightSubsystem, "level"),
			"Load level that was last applied to the output",
			[]string{"id"}, nil,
		),
		target: prometheus.NewDesc(prometheus.BuildFQName(namespace, lightSubsystem, "target"),
			"Requested load level",
			[]string{"id"}, nil,
		),
		output: prometheus.NewDesc(prometheus.BuildFQName(namespace, lightSubsystem, "output"),
			"Native output value of the applied load level",
			[]string{"id"}, nil,
		),
		ramping: prometheus.NewDesc(prometheus.BuildFQName(namespace, lightSubsystem, "ramping"),
			"1 while a ramp is in progress",
			[]string{"id"}, nil,
		),
		pulsing: prometheus.NewDesc(prometheus.BuildFQName(namespace, lightSubsystem, "pulsing"),
			"1 while the pulse effect is active",
			[]string{"id"}, nil,
		),
		on: prometheus.NewDesc(prometheus.BuildFQName(namespace, lightSubsystem, "on"),
			"1 while the light is on",
			[]string{"id"}, nil,
		),
		tickIntervalMax: prometheus.NewDesc(prometheus.BuildFQName(namespace, lightSubsystem, "tick_interval_max_seconds"),
			"Longest time between two ticks of the light runner in the recent past",
			[]string{"id"}, nil,
		),
	}
}

func (collector *LightCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.level
	ch <- collector.target
	ch <- collector.output
	ch <- collector.ramping
	ch <- collector.pulsing
	ch <- collector.on
	ch <- collector.tickIntervalMax
}

// Collect implements required collect function for all prometheus collectors
func (collector *LightCollector) Collect(ch chan<- prometheus.Metric) {
	for _, runner := range collector.runners {
		id := runner.GetId()
		state := runner.GetState()
		ch <- prometheus.MustNewConstMetric(collector.level, prometheus.GaugeValue, float64(state.CurrentLevel), id)
		ch <- prometheus.MustNewConstMetric(collector.target, prometheus.GaugeValue, float64(state.TargetLevel), id)
		ch <- prometheus.MustNewConstMetric(collector.output, prometheus.GaugeValue, float64(state.Output), id)
		ch <- prometheus.MustNewConstMetric(collector.ramping, prometheus.GaugeValue, boolToFloat(state.IsRamping), id)
		ch <- prometheus.MustNewConstMetric(collector.pulsing, prometheus.GaugeValue, boolToFloat(state.IsPulsing), id)
		ch <- prometheus.MustNewConstMetric(collector.on, prometheus.GaugeValue, boolToFloat(state.IsOn), id)
		ch <- prometheus.MustNewConstMetric(collector.tickIntervalMax, prometheus.GaugeValue, runner.GetTickIntervalMax(), id)
	}
}

func boolToFloat(value bool) float64 {
	if value {
		return 1
	}
	return 0
}
