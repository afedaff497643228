package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	GeocodeLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reliefhub_geocode_lookups_total",
		Help: "Geocode lookups by outcome.",
	}, []string{"outcome"})

	HubRegistrations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reliefhub_registrations_total",
		Help: "Relief hub registrations by outcome.",
	}, []string{"outcome"})

	MarkersExcluded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reliefhub_markers_excluded_total",
		Help: "Hubs left off the map because their coordinates were invalid.",
	})

	ConsumedMessages = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reliefhub_consumer_messages_total",
		Help: "Messages consumed by topic.",
	}, []string{"topic"})

	SMSSends = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reliefhub_sms_sends_total",
		Help: "SMS deliveries by outcome.",
	}, []string{"outcome"})
)
