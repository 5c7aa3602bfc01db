package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chat_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"method", "path"},
	)

	// Room metrics
	WSConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "chat_ws_connections",
			Help: "Currently open websocket connections",
		},
	)

	RoomJoins = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chat_room_joins_total",
			Help: "Total successful room joins",
		},
	)

	MessagesBroadcast = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_messages_broadcast_total",
			Help: "Total messages broadcast to the room",
		},
		[]string{"type"},
	)

	NicknameRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_nickname_rejections_total",
			Help: "Nickname validation failures",
		},
		[]string{"reason"},
	)
)
