package transition

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var verdicts = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "loan_transition_verdicts_total",
	Help: "Validation verdicts per command and outcome.",
}, []string{"command", "outcome"})

func observeVerdict(command string, err error) {
	outcome := "accept"
	if err != nil {
		outcome = "reject"
	}
	verdicts.WithLabelValues(command, outcome).Inc()
}
