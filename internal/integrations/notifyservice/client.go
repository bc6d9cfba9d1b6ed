package notifyservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент сервиса уведомлений. После прогона реконсиляции сервис
// отправляет сводку (количество сгенерированных слотов, пропущенные и
// защищённые дни), чтобы UI показал инструктору предупреждения.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента сервиса уведомлений
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// NotifyReconcile отправляет сводку реконсиляции.
// Недоставленная сводка не считается ошибкой бизнес-операции: сам
// результат реконсиляции уже зафиксирован и возвращён вызывающему.
func (c *Client) NotifyReconcile(ctx context.Context, summary *ReconcileSummary) error {
	if c.baseURL == "" {
		// Уведомления не сконфигурированы
		return nil
	}

	url := fmt.Sprintf("%s/internal/notifications/reconcile", c.baseURL)

	body, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal summary: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}

	c.log.Info("NotifyReconcile: summary delivered for instructor=%d (generated=%d, skipped=%d)",
		summary.InstructorID, summary.GeneratedCount, len(summary.SkippedDates))
	return nil
}
