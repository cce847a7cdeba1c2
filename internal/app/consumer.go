package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/digitos-team/Digitos-Payroll-software-sub000/internal/config"
	"github.com/digitos-team/Digitos-Payroll-software-sub000/internal/events"
	"github.com/digitos-team/Digitos-Payroll-software-sub000/internal/messaging/kafka/consumer"
	"github.com/digitos-team/Digitos-Payroll-software-sub000/internal/notification"
	"github.com/digitos-team/Digitos-Payroll-software-sub000/internal/shared/connection"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

func RunConsumer() error {
	logger := zap.L().Named("app.consumer")
	cfg := config.FromEnv()

	if cfg.KafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	redisClient, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, 5)
	if err != nil {
		return err
	}

	badgeService := notification.NewBadgeService(redisClient, logger)

	requestedReader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{cfg.KafkaBroker},
		Topic:          events.SalaryChangeRequestedTopic,
		GroupID:        "paydash-badge-requested",
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer requestedReader.Close()

	decidedReader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{cfg.KafkaBroker},
		Topic:          events.SalaryChangeDecidedTopic,
		GroupID:        "paydash-badge-decided",
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer decidedReader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumeSalaryChangeRequested(ctx, requestedReader, badgeService, logger)
	go consumer.ConsumeSalaryChangeDecided(ctx, decidedReader, badgeService, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
