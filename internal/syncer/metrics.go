package syncer

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	syncAttempts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "haven_sync_attempts_total",
		Help: "Remote sync pushes attempted.",
	})
	syncFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "haven_sync_failures_total",
		Help: "Remote sync pushes that failed.",
	})
)
