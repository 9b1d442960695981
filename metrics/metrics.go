package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Result labels for CommandsTotal.
const (
	ResultOK       = "ok"
	ResultRejected = "rejected"
	ResultError    = "error"
)

var (
	CommandsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "torpe",
		Name:      "commands_total",
		Help:      "Slash command invocations by command and result.",
	}, []string{"command", "result"})

	MemeRenderSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "torpe",
		Name:      "meme_render_seconds",
		Help:      "Time spent downloading and captioning a meme image.",
		Buckets:   prometheus.DefBuckets,
	})
)

func CountCommand(command, result string) {
	CommandsTotal.WithLabelValues(command, result).Inc()
}
