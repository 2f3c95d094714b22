package main

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/radieske/bet-companion-platform/internal/shared/config"
	"github.com/radieske/bet-companion-platform/internal/shared/db"
	"github.com/radieske/bet-companion-platform/internal/shared/kafka"
	"github.com/radieske/bet-companion-platform/internal/shared/logger"
	"github.com/radieske/bet-companion-platform/internal/shared/metrics"
	"github.com/radieske/bet-companion-platform/internal/tracker/engine"
	"github.com/radieske/bet-companion-platform/internal/tracker/repo"
	ev "github.com/radieske/bet-companion-platform/pkg/contracts/events"
)

func main() {
	cfg := config.Load()
	log, err := logger.New(cfg.ServiceName, cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	// Conexão com banco de dados Postgres pra recarregar o histórico e gravar a foto
	pg, err := db.ConnectPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("pg connect", zap.Error(err))
	}
	defer pg.Close()

	repository := repo.NewPostgres(pg)

	// Kafka consumer: consome eventos bet_settled e materializa o snapshot de desempenho
	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:  strings.Split(cfg.KafkaBrokers, ","),
		GroupID:  "settlement-worker",
		Topic:    cfg.TopicBetSettled,
		MinBytes: 1e3,
		MaxBytes: 10e6,
	})
	defer reader.Close()

	var dlqWriter *kafkago.Writer
	if cfg.TopicBetSettledDLQ != "" {
		dlqWriter = kafka.NewWriter(cfg.KafkaBrokers, cfg.TopicBetSettledDLQ)
		defer dlqWriter.Close()
	}

	// Métricas Prometheus do processamento
	consumed := prometheus.NewCounter(prometheus.CounterOpts{Name: "settlement_events_consumed_total", Help: "eventos consumidos"})
	snapshots := prometheus.NewCounter(prometheus.CounterOpts{Name: "settlement_snapshots_upserted_total", Help: "fotos de desempenho gravadas"})
	errorsBy := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "settlement_errors_total", Help: "erros por estágio"}, []string{"stage"})
	prometheus.MustRegister(consumed, snapshots, errorsBy)

	// Servidor HTTP para métricas Prometheus e healthcheck
	log.Info("metrics/health", zap.String("addr", ":"+cfg.MetricsPort))
	metrics.StartMetricsServer(cfg.MetricsPort, func(ctx context.Context) error {
		return pg.PingContext(ctx)
	})

	log.Info("settlement-worker started", zap.String("consume", cfg.TopicBetSettled))

	ctx := context.Background()

	// Loop principal: consome eventos, recalcula métricas e grava o snapshot
	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			log.Warn("kafka read", zap.Error(err))
			time.Sleep(time.Second)
			continue
		}
		consumed.Inc()

		var settled ev.BetSettled
		if jerr := json.Unmarshal(msg.Value, &settled); jerr != nil {
			log.Error("unmarshal bet_settled", zap.Error(jerr))
			errorsBy.WithLabelValues("decode").Inc()
			continue
		}

		if err := processOne(ctx, repository, &settled); err != nil {
			// Retry simples antes de desistir pro DLQ
			const retries = 3
			for i := 0; i < retries; i++ {
				time.Sleep(time.Duration(300*(i+1)) * time.Millisecond)
				if err = processOne(ctx, repository, &settled); err == nil {
					break
				}
			}
			if err != nil {
				log.Error("process settlement", zap.String("betId", settled.BetID), zap.Error(err))
				errorsBy.WithLabelValues("process").Inc()
				if dlqWriter != nil {
					_ = kafka.WriteJSON(ctx, dlqWriter, settled.BetID, msg.Value)
				}
				continue
			}
		}
		snapshots.Inc()
	}
}

// processOne recarrega o estado completo do usuário e materializa a foto.
// Recalcular do zero torna a re-liquidação naturalmente idempotente: não
// importa quantas vezes o mesmo evento chegue, a foto converge.
func processOne(ctx context.Context, repository *repo.Postgres, settled *ev.BetSettled) error {
	bets, err := repository.List(ctx, settled.UserID)
	if err != nil {
		return err
	}
	bankroll, err := repository.GetBankroll(ctx, settled.UserID)
	if err != nil {
		return err
	}

	m := engine.ComputeMetrics(bets, bankroll)
	r := engine.EvaluateRank(len(bets), m.Yield)

	return repository.UpsertSnapshot(ctx, repo.SnapshotFrom(settled.UserID, len(bets), m, r))
}
