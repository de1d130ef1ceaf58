package manapool

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/manabuy/internal/domain"
	"github.com/vladislavdragonenkov/manabuy/internal/version"
)

const (
	// DefaultBaseURL — продакшен-адрес API маркетплейса.
	DefaultBaseURL = "https://manapool.com/api/v1"

	headerEmail = "X-ManaPool-Email"
	headerToken = "X-ManaPool-Access-Token"

	defaultTimeout = 60 * time.Second
)

// Config — настройки подключения к API.
type Config struct {
	BaseURL string
	Email   string
	Token   string
	Timeout time.Duration
}

// Client — HTTP-клиент покупательского API Mana Pool. Аутентифицируется
// парой email + bearer-токен в заголовках каждого запроса.
type Client struct {
	httpClient *http.Client
	baseURL    string
	email      string
	token      string
	logger     *log.Entry
}

// NewClient создаёт клиент. Отсутствие учётных данных — фатальная
// ошибка авторизации: без них любой вызов будет отклонён.
func NewClient(cfg Config, logger *log.Entry) (*Client, error) {
	if cfg.Email == "" || cfg.Token == "" {
		return nil, fmt.Errorf("%w: api email and access token are required", domain.ErrAuthentication)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if logger == nil {
		logger = log.New().WithField("component", "manapool")
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		email:      cfg.Email,
		token:      cfg.Token,
		logger:     logger,
	}, nil
}

// send выполняет запрос и возвращает тело ответа, транслируя транспортные
// и HTTP-ошибки в доменную таксономию.
func (c *Client) send(ctx context.Context, method, path string, query url.Values, payload interface{}) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set(headerEmail, c.email)
	req.Header.Set(headerToken, c.token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", domain.ErrTransientNetwork, method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response body: %v", domain.ErrTransientNetwork, err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return data, nil
	}
	return nil, c.mapError(resp.StatusCode, data, method, path)
}

// mapError переводит HTTP-статус в ошибку доменной таксономии. Тело
// ответа сохраняется в сообщении: оператор должен видеть ответ сервера
// дословно, без подавления.
func (c *Client) mapError(status int, body []byte, method, path string) error {
	detail := strings.TrimSpace(string(body))

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return fmt.Errorf("%w: %s %s: %d %s", domain.ErrAuthentication, method, path, status, detail)
	case status == http.StatusPaymentRequired:
		return fmt.Errorf("%w: %s", domain.ErrPaymentDeclined, detail)
	case status == http.StatusGone:
		return fmt.Errorf("%w: %s", domain.ErrReservationExpired, detail)
	case status == http.StatusUnprocessableEntity:
		var failure struct {
			Error       string   `json:"error"`
			Unavailable []string `json:"unavailable"`
		}
		if err := json.Unmarshal(body, &failure); err == nil && len(failure.Unavailable) > 0 {
			return &domain.UnavailableItemsError{Identifiers: failure.Unavailable}
		}
		return fmt.Errorf("%w: %s %s: %d %s", domain.ErrInvalidInput, method, path, status, detail)
	case status == http.StatusRequestTimeout || status == http.StatusTooManyRequests || status >= 500:
		return fmt.Errorf("%w: %s %s: %d %s", domain.ErrTransientNetwork, method, path, status, detail)
	default:
		return fmt.Errorf("%s %s failed: %d %s", method, path, status, detail)
	}
}

var (
	_ domain.Optimizer          = (*Client)(nil)
	_ domain.CatalogReader      = (*Client)(nil)
	_ domain.ReservationService = (*Client)(nil)
)
