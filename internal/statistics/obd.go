package statistics

import (
	"github.com/octave-ivi/octave/internal/obd"
	"github.com/prometheus/client_golang/prometheus"
)

const obdSubsystem = "obd"

type ObdCollector struct {
	manager *obd.Manager

	value             *prometheus.Desc
	smoothed          *prometheus.Desc
	connectionState   *prometheus.Desc
	reconnectAttempts *prometheus.Desc
}

func NewObdCollector(manager *obd.Manager) *ObdCollector {
	return &ObdCollector{
		manager: manager,
		value: prometheus.NewDesc(prometheus.BuildFQName(namespace, obdSubsystem, "value"),
			"Current raw value of the parameter",
			[]string{"id"}, nil,
		),
		smoothed: prometheus.NewDesc(prometheus.BuildFQName(namespace, obdSubsystem, "value_smoothed"),
			"Rolling window average of the parameter",
			[]string{"id"}, nil,
		),
		connectionState: prometheus.NewDesc(prometheus.BuildFQName(namespace, obdSubsystem, "connected"),
			"Whether a vehicle is currently connected",
			nil, nil,
		),
		reconnectAttempts: prometheus.NewDesc(prometheus.BuildFQName(namespace, obdSubsystem, "reconnect_attempts_total"),
			"Total number of connection attempts since startup",
			nil, nil,
		),
	}
}

func (collector *ObdCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.value
	ch <- collector.smoothed
	ch <- collector.connectionState
	ch <- collector.reconnectAttempts
}

func (collector *ObdCollector) Collect(ch chan<- prometheus.Metric) {
	connected := 0.0
	if collector.manager.IsConnected() {
		connected = 1.0
	}
	ch <- prometheus.MustNewConstMetric(collector.connectionState, prometheus.GaugeValue, connected)
	ch <- prometheus.MustNewConstMetric(collector.reconnectAttempts, prometheus.CounterValue,
		float64(collector.manager.ReconnectAttempts()))

	values := collector.manager.Values()
	for id, value := range values.Snapshot() {
		ch <- prometheus.MustNewConstMetric(collector.value, prometheus.GaugeValue, value, id)
		if smoothed, ok := values.Smoothed(id); ok {
			ch <- prometheus.MustNewConstMetric(collector.smoothed, prometheus.GaugeValue, smoothed, id)
		}
	}
}
