package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	registrationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "deptshare_registrations_total",
		Help: "Account registrations by result.",
	}, []string{"result"})

	loginsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "deptshare_logins_total",
		Help: "Login attempts by result.",
	}, []string{"result"})

	uploadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "deptshare_uploads_total",
		Help: "File uploads by result.",
	}, []string{"result"})

	uploadedBytesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "deptshare_uploaded_bytes_total",
		Help: "Bytes accepted by successful uploads.",
	})

	identifierCollisionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "deptshare_identifier_collisions_total",
		Help: "Generated identifiers that were already taken.",
	})
)
