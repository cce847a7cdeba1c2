package consumer

import (
	"context"
	"encoding/json"

	"github.com/digitos-team/Digitos-Payroll-software-sub000/internal/events"
	"github.com/digitos-team/Digitos-Payroll-software-sub000/internal/notification"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

func ConsumeSalaryChangeRequested(
	ctx context.Context,
	reader *kafkago.Reader,
	badges notification.BadgeService,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.salary_change_requested")
	log.Info("salary change requested consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("salary change requested consumer stopped")
				return
			}
			log.Error("fetch salary change requested message failed", zap.Error(err))
			continue
		}

		var event events.SalaryChangeRequestedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode salary_change_requested event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := badges.Increment(ctx, event.CompanyID); err != nil {
			log.Error("increment pending badge failed",
				zap.String("request_id", event.RequestID),
				zap.String("company_id", event.CompanyID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit salary change requested message failed", zap.Error(err))
			continue
		}

		log.Info("pending badge incremented",
			zap.String("request_id", event.RequestID),
			zap.String("company_id", event.CompanyID),
		)
	}
}

func ConsumeSalaryChangeDecided(
	ctx context.Context,
	reader *kafkago.Reader,
	badges notification.BadgeService,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.salary_change_decided")
	log.Info("salary change decided consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("salary change decided consumer stopped")
				return
			}
			log.Error("fetch salary change decided message failed", zap.Error(err))
			continue
		}

		var event events.SalaryChangeDecidedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode salary_change_decided event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := badges.Decrement(ctx, event.CompanyID); err != nil {
			log.Error("decrement pending badge failed",
				zap.String("request_id", event.RequestID),
				zap.String("company_id", event.CompanyID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit salary change decided message failed", zap.Error(err))
			continue
		}

		log.Info("pending badge decremented",
			zap.String("request_id", event.RequestID),
			zap.String("status", event.Status),
			zap.String("company_id", event.CompanyID),
		)
	}
}
