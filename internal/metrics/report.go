package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Fields flattens the gathered metrics into log fields. Histograms report
// their sample count and sum.
func Fields(g prometheus.Gatherer) ([]zap.Field, error) {
	families, err := g.Gather()
	if err != nil {
		return nil, fmt.Errorf("gather metrics: %w", err)
	}
	var fields []zap.Field
	for _, fam := range families {
		for _, m := range fam.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				fields = append(fields, zap.Float64(fam.GetName(), m.GetCounter().GetValue()))
			case m.GetGauge() != nil:
				fields = append(fields, zap.Float64(fam.GetName(), m.GetGauge().GetValue()))
			case m.GetHistogram() != nil:
				h := m.GetHistogram()
				fields = append(fields,
					zap.Uint64(fam.GetName()+"_count", h.GetSampleCount()),
					zap.Float64(fam.GetName()+"_sum", h.GetSampleSum()),
				)
			}
		}
	}
	return fields, nil
}

// WriteTextfile writes the gathered metrics in the text exposition format,
// for pickup by a node exporter textfile collector.
func WriteTextfile(g prometheus.Gatherer, path string) error {
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("write metrics %s: %w", path, err)
	}
	return nil
}
