package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/hirebridge/placement-service/internal/config"
	"github.com/hirebridge/placement-service/internal/events"
	"github.com/hirebridge/placement-service/internal/persistence"
)

// NotificationService emits notifications for domain events. Delivery is
// best effort: failures are logged and never surface to the command that
// produced the event. Redis dedupes delivery by event id so a retried
// command cannot notify twice.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	redis      *persistence.Redis
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, redis *persistence.Redis, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		redis:      redis,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventCandidateSubmitted, n.handleCandidateSubmitted)
	n.dispatcher.Subscribe(events.EventCandidateStatusChanged, n.handleStatusChanged)
	n.dispatcher.Subscribe(events.EventInterviewScheduled, n.handleInterviewScheduled)
	n.dispatcher.Subscribe(events.EventOfferMade, n.handleOfferMade)
	n.dispatcher.Subscribe(events.EventOfferResponded, n.handleOfferResponded)
	n.dispatcher.Subscribe(events.EventJoiningConfirmed, n.handleJoiningConfirmed)
	n.dispatcher.Subscribe(events.EventPayoutCreated, n.handlePayoutEvent)
	n.dispatcher.Subscribe(events.EventPayoutStatusChanged, n.handlePayoutEvent)
}

func (n *NotificationService) handleCandidateSubmitted(ctx context.Context, event events.Event) error {
	if !n.claim(ctx, event) {
		return nil
	}
	n.logger.Info("CandidateSubmitted", zap.String("candidate_id", event.CandidateID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleStatusChanged(ctx context.Context, event events.Event) error {
	if !n.claim(ctx, event) {
		return nil
	}
	n.logger.Info("CandidateStatusChanged", zap.String("candidate_id", event.CandidateID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleInterviewScheduled(ctx context.Context, event events.Event) error {
	if !n.claim(ctx, event) {
		return nil
	}
	n.logger.Info("InterviewScheduled", zap.String("candidate_id", event.CandidateID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleOfferMade(ctx context.Context, event events.Event) error {
	if !n.claim(ctx, event) {
		return nil
	}
	n.logger.Info("OfferMade", zap.String("candidate_id", event.CandidateID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleOfferResponded(ctx context.Context, event events.Event) error {
	if !n.claim(ctx, event) {
		return nil
	}
	n.logger.Info("OfferResponded", zap.String("candidate_id", event.CandidateID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleJoiningConfirmed(ctx context.Context, event events.Event) error {
	if !n.claim(ctx, event) {
		return nil
	}
	n.logger.Info("JoiningConfirmed", zap.String("candidate_id", event.CandidateID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handlePayoutEvent(ctx context.Context, event events.Event) error {
	if !n.claim(ctx, event) {
		return nil
	}
	n.logger.Info("PayoutEvent",
		zap.String("payout_id", event.PayoutID),
		zap.String("event_type", string(event.Type)),
		zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	return nil
}

// claim reserves the event id for delivery. When redis is down the event is
// delivered anyway; duplicate notifications beat dropped ones.
func (n *NotificationService) claim(ctx context.Context, event events.Event) bool {
	if n.redis == nil || n.redis.Client == nil || event.ID == "" {
		return true
	}
	ttl := time.Duration(n.cfg.DedupeTTLHours) * time.Hour
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	fresh, err := n.redis.Client.SetNX(ctx, "notify:"+event.ID, 1, ttl).Result()
	if err != nil {
		n.logger.Warn("notification dedupe unavailable", zap.Error(err))
		return true
	}
	return fresh
}

func (n *NotificationService) sendEmailNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("candidate_id", event.CandidateID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("candidate_id", event.CandidateID),
		zap.String("event_type", string(event.Type)))
}
