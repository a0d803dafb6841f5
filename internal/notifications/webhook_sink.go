package notifications

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/alumnihub/alumnihub-api/internal/models"
	"github.com/alumnihub/alumnihub-api/pkg/circuitbreaker"
	"github.com/alumnihub/alumnihub-api/pkg/httpclient"
	"github.com/alumnihub/alumnihub-api/pkg/logger"
	"github.com/alumnihub/alumnihub-api/pkg/metrics"
	"github.com/alumnihub/alumnihub-api/pkg/retry"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

const (
	webhookSinkName     = "webhook"
	webhookEvent        = "notification.created"
	signatureHeader     = "X-AlumniHub-Signature"
	webhookDeliveryTime = 30 * time.Second
)

type webhookPayload struct {
	Event        string               `json:"event"`
	Notification *models.Notification `json:"notification"`
}

// WebhookSink posts notifications to an external URL in the background.
// Deliveries are retried with backoff behind a circuit breaker; Send never blocks on the network.
type WebhookSink struct {
	url     string
	secret  string
	client  httpclient.Client
	breaker *gobreaker.CircuitBreaker
	retry   retry.Config
	wg      sync.WaitGroup
}

// NewWebhookSink signs request bodies with HMAC-SHA256 when secret is set
func NewWebhookSink(url, secret string, client httpclient.Client) *WebhookSink {
	return &WebhookSink{
		url:     url,
		secret:  secret,
		client:  client,
		breaker: circuitbreaker.NewCircuitBreaker(circuitbreaker.DefaultConfig("notification-webhook")),
		retry:   retry.WebhookConfig(),
	}
}

// Send schedules delivery and returns immediately; only encoding errors are reported
func (w *WebhookSink) Send(ctx context.Context, n *models.Notification) error {
	body, err := json.Marshal(webhookPayload{Event: webhookEvent, Notification: n})
	if err != nil {
		return fmt.Errorf("webhook sink: failed to encode notification: %w", err)
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()

		// outlive the request that raised the notification
		deliveryCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), webhookDeliveryTime)
		defer cancel()

		err := w.deliver(deliveryCtx, body)
		metrics.NotificationDeliveries.WithLabelValues(webhookSinkName, metrics.StatusLabel(err)).Inc()
		if err != nil {
			logger.Error("Notification webhook delivery failed",
				zap.String("notification_id", n.ID),
				zap.String("type", string(n.Type)),
				zap.Error(err))
			return
		}
		logger.Debug("Notification webhook delivered",
			zap.String("notification_id", n.ID),
			zap.String("type", string(n.Type)))
	}()

	return nil
}

// Wait blocks until in-flight deliveries finish; called on shutdown
func (w *WebhookSink) Wait() {
	w.wg.Wait()
}

func (w *WebhookSink) deliver(ctx context.Context, body []byte) error {
	return retry.Do(ctx, w.retry, "notification_webhook", func() error {
		_, err := circuitbreaker.Execute(w.breaker, func() (struct{}, error) {
			return struct{}{}, w.post(ctx, body)
		})
		if circuitbreaker.IsOpen(err) {
			return retry.Permanent(err)
		}
		return err
	})
}

func (w *WebhookSink) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return retry.Permanent(fmt.Errorf("failed to build webhook request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	if w.secret != "" {
		req.Header.Set(signatureHeader, Sign(w.secret, body))
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook request failed: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10)) //nolint:errcheck // drain for connection reuse

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests:
		return retry.Permanent(fmt.Errorf("webhook rejected notification: status %d", resp.StatusCode))
	default:
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
}

// Sign returns the hex HMAC-SHA256 of body, prefixed with the algorithm name
func Sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}
