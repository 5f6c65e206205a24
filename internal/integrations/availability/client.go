package availability

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент сервиса серверного расчета доступности слотов
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      *Cache // nil когда кэш выключен
	log        Logger
}

// NewClient создает новый экземпляр клиента availability
func NewClient(baseURL string, timeout time.Duration, cache *Cache, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		cache: cache,
		log:   log,
	}
}

// FetchPrestationSlots получает рассчитанные сервером стартовые времена,
// в которые хотя бы один подходящий сотрудник свободен на всю длительность услуги
func (c *Client) FetchPrestationSlots(ctx context.Context, etablissementID, prestationID int64, dateISO string, stepMinutes int) (*SlotsResult, error) {
	if c.cache != nil {
		cached, err := c.cache.Get(ctx, etablissementID, prestationID, dateISO, stepMinutes)
		if err != nil {
			// Промах по ошибке кэша не критичен, идем в сервис
			c.log.Warn("availability cache read failed: etablissement=%d, prestation=%d, date=%s: %v",
				etablissementID, prestationID, dateISO, err)
		} else if cached != nil {
			return cached, nil
		}
	}

	endpoint := fmt.Sprintf("%s/availability/prestations/%d/slots", c.baseURL, prestationID)
	query := url.Values{}
	query.Set("etablissementId", strconv.FormatInt(etablissementID, 10))
	query.Set("date", dateISO)
	query.Set("step", strconv.Itoa(stepMinutes))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var result SlotsResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, &result, stepMinutes); err != nil {
			c.log.Warn("availability cache write failed: etablissement=%d, prestation=%d, date=%s: %v",
				etablissementID, prestationID, dateISO, err)
		}
	}

	return &result, nil
}

// FetchPrestationSlotsWithGracefulDegradation получает слоты с graceful degradation.
// При недоступности сервиса возвращает ErrServiceDegraded: вызывающая сторона
// откатывается на слоты из часов работы, ошибка не доходит до клиента.
func (c *Client) FetchPrestationSlotsWithGracefulDegradation(ctx context.Context, etablissementID, prestationID int64, dateISO string, stepMinutes int) (*SlotsResult, error) {
	result, err := c.FetchPrestationSlots(ctx, etablissementID, prestationID, dateISO, stepMinutes)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		c.log.Error("availability service unavailable, applying graceful degradation: etablissement=%d, prestation=%d, date=%s: %v",
			etablissementID, prestationID, dateISO, err)
		return nil, fmt.Errorf("%w: prestation=%d, date=%s, error=%v", ErrServiceDegraded, prestationID, dateISO, err)
	}

	return result, nil
}
