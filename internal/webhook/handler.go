// Package webhook answers LINE Messaging API events with the chat service.
//
// Requests are acknowledged with 200 right after signature verification and
// events are processed in the background, as LINE requires.
package webhook

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
	"github.com/line/line-bot-sdk-go/v8/linebot/webhook"

	"github.com/garyellow/sookmyung-chatbot-go/internal/chat"
	"github.com/garyellow/sookmyung-chatbot-go/internal/config"
	"github.com/garyellow/sookmyung-chatbot-go/internal/ctxutil"
	"github.com/garyellow/sookmyung-chatbot-go/internal/lineutil"
	"github.com/garyellow/sookmyung-chatbot-go/internal/logger"
	"github.com/garyellow/sookmyung-chatbot-go/internal/metrics"
)

const (
	maxEventsPerWebhook = 100
	loadingSeconds      = 60
)

// WelcomeMessage is sent when a user adds the bot as a friend.
const WelcomeMessage = "안녕하세요! 숙명여자대학교 신입생 안내 챗봇입니다.\n" +
	"등록금 납부, 영어배치고사, 신체검사, 입학식, 오리엔테이션, 기숙사, 영어 교양필수 이수면제에 대해 물어보세요."

// Answerer answers one validated question.
type Answerer interface {
	Answer(ctx context.Context, message, provided string) (chat.Reply, error)
}

// Messenger sends messages through the LINE Messaging API.
type Messenger interface {
	Reply(replyToken string, messages []messaging_api.MessageInterface) error
	ShowLoading(chatID string, seconds int32) error
}

// NewMessenger returns a Messenger backed by the LINE SDK client.
func NewMessenger(channelToken string) (Messenger, error) {
	client, err := messaging_api.NewMessagingApiAPI(channelToken)
	if err != nil {
		return nil, fmt.Errorf("create messaging API client: %w", err)
	}
	return &lineMessenger{client: client}, nil
}

type lineMessenger struct {
	client *messaging_api.MessagingApiAPI
}

func (m *lineMessenger) Reply(replyToken string, messages []messaging_api.MessageInterface) error {
	_, err := m.client.ReplyMessage(&messaging_api.ReplyMessageRequest{
		ReplyToken: replyToken,
		Messages:   messages,
	})
	return err
}

func (m *lineMessenger) ShowLoading(chatID string, seconds int32) error {
	_, err := m.client.ShowLoadingAnimation(&messaging_api.ShowLoadingAnimationRequest{
		ChatId:         chatID,
		LoadingSeconds: seconds,
	})
	return err
}

// HandlerConfig holds configuration for creating a new Handler
type HandlerConfig struct {
	ChannelSecret string
	Messenger     Messenger
	Service       Answerer
	Metrics       *metrics.Metrics // optional
	Logger        *logger.Logger
	Timeout       time.Duration // per event; defaults to config.WebhookProcessing
}

// Handler handles LINE webhook events
type Handler struct {
	channelSecret string
	messenger     Messenger
	service       Answerer
	metrics       *metrics.Metrics
	logger        *logger.Logger
	timeout       time.Duration
	wg            sync.WaitGroup
}

// NewHandler creates a new webhook handler.
func NewHandler(cfg HandlerConfig) (*Handler, error) {
	if cfg.ChannelSecret == "" {
		return nil, errors.New("webhook: channel secret is required")
	}
	if cfg.Messenger == nil || cfg.Service == nil || cfg.Logger == nil {
		return nil, errors.New("webhook: messenger, service and logger are required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = config.WebhookProcessing
	}
	return &Handler{
		channelSecret: cfg.ChannelSecret,
		messenger:     cfg.Messenger,
		service:       cfg.Service,
		metrics:       cfg.Metrics,
		logger:        cfg.Logger.WithModule("webhook"),
		timeout:       timeout,
	}, nil
}

// Handle is the Gin handler for the webhook endpoint
func (h *Handler) Handle(c *gin.Context) {
	cb, err := webhook.ParseRequest(h.channelSecret, c.Request)
	if err != nil {
		if errors.Is(err, webhook.ErrInvalidSignature) {
			h.logger.Warn("Invalid webhook signature")
			c.Status(http.StatusBadRequest)
		} else {
			h.logger.WithError(err).Error("Failed to parse webhook request")
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	// LINE expects 200 before the reply is sent.
	c.Status(http.StatusOK)

	events := cb.Events
	if len(events) > maxEventsPerWebhook {
		h.logger.WithField("event_count", len(events)).
			WithField("limit", maxEventsPerWebhook).
			Warn("Too many events in webhook batch; truncating")
		events = events[:maxEventsPerWebhook]
	}
	events = append([]webhook.EventInterface(nil), events...)

	baseCtx := ctxutil.PreserveTracing(c.Request.Context())
	h.wg.Go(func() {
		defer func() {
			if r := recover(); r != nil {
				h.logger.WithField("panic", r).Error("Panic in async event processing")
			}
		}()
		for _, event := range events {
			h.processEvent(baseCtx, event)
		}
	})
}

// processEvent answers a single event. Unsupported events are ignored.
func (h *Handler) processEvent(parent context.Context, event webhook.EventInterface) {
	start := time.Now()

	var (
		eventType  string
		replyToken string
		source     webhook.SourceInterface
		eventID    string
		question   string
	)
	switch e := event.(type) {
	case webhook.MessageEvent:
		q, ok := questionFromMessage(e)
		if !ok {
			return
		}
		eventType, replyToken, source, eventID, question = "message", e.ReplyToken, e.Source, e.WebhookEventId, q
	case webhook.FollowEvent:
		eventType, replyToken, source, eventID = "follow", e.ReplyToken, e.Source, e.WebhookEventId
	default:
		h.logger.WithField("event_type", fmt.Sprintf("%T", event)).Debug("Unsupported event type")
		return
	}

	ctx, cancel := context.WithTimeout(parent, h.timeout)
	defer cancel()
	ctx = ctxutil.WithChannel(ctx, ctxutil.ChannelLINE)
	if eventID != "" {
		ctx = ctxutil.WithRequestID(ctx, eventID)
	}
	if userID := sourceUserID(source); userID != "" {
		ctx = ctxutil.WithUserID(ctx, userID)
	}

	log := h.logger.WithField("event_type", eventType)
	if eventID != "" {
		log = log.WithRequestID(eventID)
	}

	text, suggest := WelcomeMessage, true
	if eventType == "message" {
		if chatID := sourceChatID(source); chatID != "" {
			if err := h.messenger.ShowLoading(chatID, loadingSeconds); err != nil {
				log.WithError(err).Warn("Failed to show loading animation")
			}
		}

		reply, err := h.service.Answer(ctx, question, "")
		if err != nil {
			log.WithError(err).Error("Failed to answer question")
			h.record(eventType, "error", start)
			return
		}
		// Unmatched questions get the topic list as a hint.
		text, suggest = reply.Response, !reply.ContextUsed
	}

	if replyToken == "" {
		log.Debug("Empty reply token, skipping reply")
		h.record(eventType, "no_reply", start)
		return
	}

	msg := lineutil.NewTextMessage(text)
	if suggest {
		msg = lineutil.NewTextMessageWithQuickReply(text, lineutil.TopicQuickReplies(lineutil.DefaultTopics)...)
	}
	messages := []messaging_api.MessageInterface{msg}
	if err := h.messenger.Reply(replyToken, messages); err != nil {
		if strings.Contains(err.Error(), "Invalid reply token") {
			log.WithError(err).Debug("Reply token already used or invalid")
		} else {
			log.WithError(err).Error("Failed to send reply")
		}
		h.record(eventType, "reply_error", start)
		return
	}

	h.record(eventType, "success", start)
	log.WithField("duration_ms", time.Since(start).Milliseconds()).Info("Event processed")
}

func (h *Handler) record(eventType, status string, start time.Time) {
	if h.metrics != nil {
		h.metrics.RecordWebhook(eventType, status, time.Since(start).Seconds())
	}
}

// Shutdown waits for all async event processing to complete.
// It returns an error if the context is canceled before completion.
func (h *Handler) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		defer close(done)
		h.wg.Wait()
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func sourceChatID(source webhook.SourceInterface) string {
	switch s := source.(type) {
	case webhook.UserSource:
		return s.UserId
	case webhook.GroupSource:
		return s.GroupId
	case webhook.RoomSource:
		return s.RoomId
	default:
		return ""
	}
}

func sourceUserID(source webhook.SourceInterface) string {
	switch s := source.(type) {
	case webhook.UserSource:
		return s.UserId
	case webhook.GroupSource:
		return s.UserId
	case webhook.RoomSource:
		return s.UserId
	default:
		return ""
	}
}
