package task

import (
	"context"
	"time"

	"github.com/alphadeveloper12/Link-Up-sub000/internal/config"
	"github.com/alphadeveloper12/Link-Up-sub000/internal/logger"
	"github.com/alphadeveloper12/Link-Up-sub000/internal/logic"
	"github.com/go-co-op/gocron/v2"
)

// PaymentReconcileJob re-queries the provider for funding intents stuck
// pending, covering webhooks the service never received.
type PaymentReconcileJob struct {
	config       *config.Config
	paymentLogic *logic.PaymentLogic
}

func NewPaymentReconcileJob(cfg *config.Config, paymentLogic *logic.PaymentLogic) *PaymentReconcileJob {
	return &PaymentReconcileJob{
		config:       cfg,
		paymentLogic: paymentLogic,
	}
}

func (j *PaymentReconcileJob) GetName() string {
	return "payment_reconciler"
}

func (j *PaymentReconcileJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Duration(j.config.Task.Interval) * time.Second)
}

func (j *PaymentReconcileJob) Execute() {
	logger.Info("Starting payment reconciliation task")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	// only intents that have had time to settle on their own
	settled, err := j.paymentLogic.ReconcilePending(ctx, 10*time.Minute)
	if err != nil {
		logger.Error("Payment reconciliation failed: %v", err)
		return
	}

	logger.Info("Payment reconciliation completed. Settled %d payments", settled)
}
