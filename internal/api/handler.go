// Package api exposes the chat service over HTTP.
//
// Every route answers JSON with a permissive CORS header. "/" and "/chat"
// dispatch on the request method: GET reports health, POST asks a question,
// anything else is rejected with 405.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/garyellow/sookmyung-chatbot-go/internal/chat"
	"github.com/garyellow/sookmyung-chatbot-go/internal/ctxutil"
	apperrors "github.com/garyellow/sookmyung-chatbot-go/internal/errors"
	"github.com/garyellow/sookmyung-chatbot-go/internal/logger"
	"github.com/garyellow/sookmyung-chatbot-go/internal/metrics"
)

// Chat status labels for metrics.
const (
	statusOK          = "ok"
	statusClientError = "client_error"
	statusError       = "error"
)

// Answerer answers one validated question.
type Answerer interface {
	Answer(ctx context.Context, message, provided string) (chat.Reply, error)
}

// ChatRequest is the POST body. Context, when present and not falsy, replaces
// the matcher's context. It may be any JSON value.
type ChatRequest struct {
	Message string          `json:"message"`
	Context json.RawMessage `json:"context,omitempty"`
}

// ProvidedContext returns the caller's context as text. A string is used as
// is. null, false, 0 and "" mean no context. Any other value is passed on as
// its compact JSON encoding.
func (r ChatRequest) ProvidedContext() string {
	raw := bytes.TrimSpace(r.Context)
	if len(raw) == 0 {
		return ""
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return ""
		}
		return s
	case 'n', 'f':
		return "" // null, false
	}

	var num float64
	if err := json.Unmarshal(raw, &num); err == nil && num == 0 {
		return ""
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return ""
	}
	return buf.String()
}

// HealthResponse is returned for GET requests.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HandlerConfig holds the dependencies of a Handler.
type HandlerConfig struct {
	Service     Answerer
	ServiceName string
	Metrics     *metrics.Metrics // optional
	Logger      *logger.Logger
}

// Handler serves the chat HTTP contract.
type Handler struct {
	service     Answerer
	serviceName string
	metrics     *metrics.Metrics
	logger      *logger.Logger
}

// NewHandler creates a Handler.
func NewHandler(cfg HandlerConfig) (*Handler, error) {
	if cfg.Service == nil {
		return nil, errors.New("api: service is required")
	}
	if cfg.Logger == nil {
		return nil, errors.New("api: logger is required")
	}
	name := cfg.ServiceName
	if name == "" {
		name = "sookmyong-chatbot"
	}
	return &Handler{
		service:     cfg.Service,
		serviceName: name,
		metrics:     cfg.Metrics,
		logger:      cfg.Logger.WithModule("api"),
	}, nil
}

// Register mounts the chat routes on r.
func (h *Handler) Register(r gin.IRoutes) {
	r.Any("/", h.Dispatch)
	r.Any("/chat", h.Dispatch)
	r.GET("/health", h.Health)
	r.HEAD("/health", h.Health)
}

// Dispatch routes by method: GET → Health, POST → Chat, others → 405.
func (h *Handler) Dispatch(c *gin.Context) {
	switch c.Request.Method {
	case http.MethodGet:
		h.Health(c)
	case http.MethodPost:
		h.Chat(c)
	default:
		h.abortWithClientError(c, apperrors.MethodNotAllowed(c.Request.Method))
	}
}

// Health reports liveness without touching the completion provider.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "healthy", Service: h.serviceName})
}

// Chat parses the body, validates the message and returns the service reply.
func (h *Handler) Chat(c *gin.Context) {
	start := time.Now()
	ctx := c.Request.Context()
	channel := ctxutil.GetChannel(ctx)

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.recordChat(channel, statusClientError, start)
		h.abortWithClientError(c, apperrors.InvalidJSON(err))
		return
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		h.recordChat(channel, statusClientError, start)
		h.abortWithClientError(c, apperrors.EmptyMessage())
		return
	}

	reply, err := h.service.Answer(ctx, message, req.ProvidedContext())
	if err != nil {
		h.recordChat(channel, statusError, start)
		_ = c.Error(err)
		h.logger.WithError(err).Error("Chat request failed")
		c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Error: apperrors.MsgInternal})
		return
	}

	h.recordChat(channel, statusOK, start)
	c.JSON(http.StatusOK, reply)
}

func (h *Handler) abortWithClientError(c *gin.Context, ce *apperrors.ClientError) {
	c.AbortWithStatusJSON(ce.Status, ErrorResponse{Error: ce.Message})
}

func (h *Handler) recordChat(channel, status string, start time.Time) {
	if h.metrics != nil {
		h.metrics.RecordChat(channel, status, time.Since(start).Seconds())
	}
}

// NotFound answers unknown paths with a JSON 404.
func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: apperrors.MsgNotFound})
}

// Recovery returns a gin.RecoveryFunc that logs the panic and answers with
// the generic 500 payload. The panic value never reaches the client.
func Recovery(log *logger.Logger) gin.RecoveryFunc {
	return func(c *gin.Context, recovered any) {
		log.WithField("panic", recovered).
			WithField("http_path", c.Request.URL.Path).
			Error("Recovered from panic")
		c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Error: apperrors.MsgInternal})
	}
}

// CORS sets the permissive origin header on every response.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Next()
	}
}
