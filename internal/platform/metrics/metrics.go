package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "employee_directory_http_requests_total",
		Help: "Number of HTTP requests handled, by method, route and status code.",
	}, []string{"method", "route", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "employee_directory_http_request_duration_seconds",
		Help:    "HTTP request latency, by method and route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
)

// ObserveRequest は 1 リクエスト分のメトリクスを記録します。route には
// パスパラメータ展開前のルートパターンを渡します。
func ObserveRequest(method, route string, status int, elapsed time.Duration) {
	requestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	requestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Handler は Prometheus のエクスポジションハンドラを返します。
func Handler() http.Handler {
	return promhttp.Handler()
}
