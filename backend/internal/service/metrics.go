package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/itchan-dev/forum/shared/errors"
)

var (
	discussionsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "forum_discussions_created_total",
		Help: "Number of discussions created",
	})

	repliesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "forum_replies_created_total",
		Help: "Number of replies appended to discussions",
	})

	rejectedOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forum_rejected_operations_total",
			Help: "Mutations refused by the forum, by operation and reason",
		},
		[]string{"operation", "reason"},
	)
)

// rejected counts err against op and returns it unchanged.
func rejected(op string, err error) error {
	reason := "internal"
	switch {
	case errors.Is[*errors.ValidationError](err):
		reason = "validation"
	case errors.Is[*errors.NotFoundError](err):
		reason = "not_found"
	}
	rejectedOperations.WithLabelValues(op, reason).Inc()
	return err
}
