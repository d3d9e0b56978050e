package auth

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	sessionsIssued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "auth_sessions_issued_total",
		Help: "Sessions created by login, signup and refresh.",
	})
	sessionsRevoked = promauto.NewCounter(prometheus.CounterOpts{
		Name: "auth_sessions_revoked_total",
		Help: "Sessions deleted by logout, refresh or explicit revocation.",
	})
	sessionsSwept = promauto.NewCounter(prometheus.CounterOpts{
		Name: "auth_sessions_swept_total",
		Help: "Expired sessions deleted by the sweeper.",
	})
)
