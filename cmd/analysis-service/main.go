package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/radieske/bet-companion-platform/internal/analysis/controller"
	"github.com/radieske/bet-companion-platform/internal/analysis/generator"
	ahttp "github.com/radieske/bet-companion-platform/internal/analysis/http"
	"github.com/radieske/bet-companion-platform/internal/analysis/matchfeed"
	apub "github.com/radieske/bet-companion-platform/internal/analysis/producer"
	"github.com/radieske/bet-companion-platform/internal/analysis/store"
	"github.com/radieske/bet-companion-platform/internal/shared/cache"
	"github.com/radieske/bet-companion-platform/internal/shared/config"
	"github.com/radieske/bet-companion-platform/internal/shared/kafka"
	"github.com/radieske/bet-companion-platform/internal/shared/logger"
)

func main() {
	// carrega config
	cfg := config.Load()

	// inicia logger
	log, err := logger.New(cfg.ServiceName, cfg.Env)
	if err != nil {
		panic(fmt.Errorf("logger init: %w", err))
	}
	defer log.Sync()

	log.Info("starting service", zap.String("service", cfg.ServiceName), zap.String("env", cfg.Env))

	// conecta com cache Redis (store das análises e do slot da cartelera)
	redisClient, err := cache.ConnectRedis(cfg.RedisAddr)
	if err != nil {
		log.Fatal("failed to connect redis", zap.Error(err))
	}
	defer redisClient.Close()
	log.Info("redis connected")

	// Kafka writer pros eventos de geração
	writer := kafka.NewWriter(cfg.KafkaBrokers, cfg.TopicAnalysisGenerated)
	defer writer.Close()

	// Métricas Prometheus da política de cache
	cacheHits := prometheus.NewCounter(prometheus.CounterOpts{Name: "analysis_cache_hits_total", Help: "análises servidas do cache"})
	cacheMisses := prometheus.NewCounter(prometheus.CounterOpts{Name: "analysis_cache_misses_total", Help: "misses (inexistente ou vencida)"})
	generated := prometheus.NewCounter(prometheus.CounterOpts{Name: "analysis_generated_total", Help: "gerações bem-sucedidas"})
	lookupFails := prometheus.NewCounter(prometheus.CounterOpts{Name: "analysis_store_lookup_failures_total", Help: "lookups falhos tratados como miss"})
	prometheus.MustRegister(cacheHits, cacheMisses, generated, lookupFails)

	// deps: contexto explícito montado aqui, nada de singleton
	ctrl := controller.New(
		log,
		store.New(redisClient),
		generator.New(cfg.AIServiceURL),
		matchfeed.New(cfg.MatchFeedURL),
		time.Duration(cfg.AnalysisTTLHours)*time.Hour,
	)
	ctrl.Publ = apub.NewKafkaPublisher(writer)
	ctrl.OnCacheHit = func() { cacheHits.Inc() }
	ctrl.OnCacheMiss = func() { cacheMisses.Inc() }
	ctrl.OnGenerated = func() { generated.Inc() }
	ctrl.OnLookupFail = func() { lookupFails.Inc() }

	api := &ahttp.API{Log: log, Ctrl: ctrl}
	apiSrv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler: api.Router(),
	}

	// metrics/health
	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())
	metricsMux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := redisClient.Ping(r.Context()).Err(); err != nil {
			http.Error(w, "redis", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	go func() {
		addr := fmt.Sprintf(":%s", cfg.MetricsPort)
		log.Info("metrics/health", zap.String("addr", addr))
		_ = http.ListenAndServe(addr, metricsMux)
	}()

	log.Info("analysis-service listening",
		zap.String("addr", fmt.Sprintf(":%s", cfg.HTTPPort)),
		zap.Int("ttlHours", cfg.AnalysisTTLHours),
	)
	if err := apiSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal("api", zap.Error(err))
	}
}
