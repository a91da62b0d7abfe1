package metrics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-arcade/platform-settings/pkg/log"
	"github.com/go-arcade/platform-settings/pkg/version"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsConfig controls the optional standalone listener.
// /metrics is always mounted on the main HTTP port as well.
type MetricsConfig struct {
	Host   string
	Port   int
	Enable bool
}

// Server owns the process registry and, when enabled, a dedicated listener for it.
type Server struct {
	config   MetricsConfig
	registry *prometheus.Registry
	server   *http.Server
}

func NewServer(config MetricsConfig) *Server {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		buildInfo(),
	)
	return &Server{config: config, registry: registry}
}

func buildInfo() prometheus.Collector {
	info := version.GetVersion()
	g := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "platform_settings_build_info",
		Help: "Build information of the running binary",
		ConstLabels: prometheus.Labels{
			"version":    info.Version,
			"commit":     info.GitCommit,
			"go_version": info.GoVersion,
		},
	})
	g.Set(1)
	return g
}

// Register adds collectors to the registry
func (s *Server) Register(cs ...prometheus.Collector) error {
	for _, c := range cs {
		if err := s.registry.Register(c); err != nil {
			return fmt.Errorf("register collector: %w", err)
		}
	}
	return nil
}

func (s *Server) Registry() *prometheus.Registry {
	return s.registry
}

// Handler serves the registry, negotiating OpenMetrics when asked
func (s *Server) Handler() http.Handler {
	return promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
		ErrorLog:          promLogger{},
	})
}

// Start is a no-op unless the standalone listener is enabled
func (s *Server) Start() error {
	if !s.config.Enable {
		log.Debugw("standalone metrics listener disabled")
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", s.Handler())
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.server = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infow("metrics server started", "address", addr)
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Errorw("metrics server failed", "address", addr, "error", err)
		}
	}()
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

type promLogger struct{}

func (promLogger) Println(v ...any) {
	log.Errorw("metrics handler error", "detail", fmt.Sprint(v...))
}
