package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

var (
	socialMetricsOnce sync.Once

	friendRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "friend_requests_total",
			Help: "Total number of friend request attempts",
		},
		[]string{"status"},
	)

	friendAcceptsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "friend_accepts_total",
			Help: "Total number of friend request accept attempts",
		},
		[]string{"status"},
	)

	signupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "signups_total",
			Help: "Total number of signup attempts",
		},
		[]string{"status"},
	)

	loginsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "logins_total",
			Help: "Total number of login attempts",
		},
		[]string{"status"},
	)
)

func RegisterSocialMetrics() {
	socialMetricsOnce.Do(func() {
		prometheus.MustRegister(friendRequestsTotal, friendAcceptsTotal, signupsTotal, loginsTotal)
	})
}

func IncFriendRequest(status string) {
	RegisterSocialMetrics()
	friendRequestsTotal.WithLabelValues(status).Inc()
}

func IncFriendAccept(status string) {
	RegisterSocialMetrics()
	friendAcceptsTotal.WithLabelValues(status).Inc()
}

func IncSignup(status string) {
	RegisterSocialMetrics()
	signupsTotal.WithLabelValues(status).Inc()
}

func IncLogin(status string) {
	RegisterSocialMetrics()
	loginsTotal.WithLabelValues(status).Inc()
}
