package main

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/radieske/bet-companion-platform/internal/shared/config"
	"github.com/radieske/bet-companion-platform/internal/shared/db"
	"github.com/radieske/bet-companion-platform/internal/shared/kafka"
	"github.com/radieske/bet-companion-platform/internal/shared/logger"
	thttp "github.com/radieske/bet-companion-platform/internal/tracker/http"
	kpub "github.com/radieske/bet-companion-platform/internal/tracker/producer"
	"github.com/radieske/bet-companion-platform/internal/tracker/repo"
)

func main() {
	cfg := config.Load()
	log, _ := logger.New(cfg.ServiceName, cfg.Env)
	defer log.Sync()

	// Postgres
	pg, err := db.ConnectPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("pg", zap.Error(err))
	}
	defer pg.Close()

	// Kafka writers (eventos de ciclo de vida da aposta)
	registeredWriter := kafka.NewWriter(cfg.KafkaBrokers, cfg.TopicBetRegistered)
	defer registeredWriter.Close()
	settledWriter := kafka.NewWriter(cfg.KafkaBrokers, cfg.TopicBetSettled)
	defer settledWriter.Close()

	// deps
	repository := repo.NewPostgres(pg)
	publ := kpub.NewKafkaPublisher(registeredWriter, settledWriter)

	// Métricas Prometheus do serviço
	betsRegistered := prometheus.NewCounter(prometheus.CounterOpts{Name: "tracker_bets_registered_total", Help: "apostas cadastradas"})
	betsSettled := prometheus.NewCounter(prometheus.CounterOpts{Name: "tracker_bets_settled_total", Help: "mudanças de outcome"})
	prometheus.MustRegister(betsRegistered, betsSettled)

	// HTTP público
	api := thttp.NewServer(log, repository, publ)
	api.OnBetRegistered = func() { betsRegistered.Inc() }
	api.OnBetSettled = func() { betsSettled.Inc() }

	apiSrv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler: api.Router(),
	}

	// metrics/health
	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())
	metricsMux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := pg.PingContext(r.Context()); err != nil {
			http.Error(w, "pg", http.StatusServiceUnavailable)
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

	log.Info("tracker-service listening", zap.String("addr", fmt.Sprintf(":%s", cfg.HTTPPort)))
	if err := apiSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal("api", zap.Error(err))
	}
}
