package scheduleservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы со ScheduleService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента ScheduleService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetAvailableSlots получает упорядоченный список слотов на дату.
// durationMinutes — суммарная длительность выбранных услуг: сервис
// возвращает слоты, в которые помещается весь блок целиком.
func (c *Client) GetAvailableSlots(ctx context.Context, clinicID int64, date string, durationMinutes int) (*AvailabilityResponse, error) {
	endpoint := fmt.Sprintf("%s/internal/clinics/%d/available-slots?date=%s&duration=%d",
		c.baseURL, clinicID, url.QueryEscape(date), durationMinutes)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Отмена запроса вызывающей стороной — не транспортная ошибка
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		// Продолжаем обработку
	case resp.StatusCode >= http.StatusInternalServerError:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: status code %d: %s", ErrUnavailable, resp.StatusCode, string(body))
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var result AvailabilityResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &result, nil
}

// CreateAppointment создает запись на прием.
// Каждый успешный вызов создает одну запись на стороне сервиса —
// дедупликации по содержимому нет, за повторные вызовы после успеха
// отвечает вызывающая сторона.
func (c *Client) CreateAppointment(ctx context.Context, appointment *CreateAppointmentRequest) (*AppointmentConfirmation, error) {
	endpoint := fmt.Sprintf("%s/internal/appointments", c.baseURL)

	payload, err := json.Marshal(appointment)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated:
		// Продолжаем обработку
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnprocessableEntity:
		var errResp ErrorResponse
		if decodeErr := json.NewDecoder(resp.Body).Decode(&errResp); decodeErr == nil && errResp.Message != "" {
			c.log.Warn("CreateAppointment: rejected by validation: %s", errResp.Message)
			return nil, fmt.Errorf("%w: %s", ErrValidationRejected, errResp.Message)
		}
		return nil, ErrValidationRejected
	case resp.StatusCode >= http.StatusInternalServerError:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: status code %d: %s", ErrUnavailable, resp.StatusCode, string(body))
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var confirmation AppointmentConfirmation
	if err := json.NewDecoder(resp.Body).Decode(&confirmation); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	c.log.Info("CreateAppointment: appointment id=%d created with status=%s", confirmation.ID, confirmation.Status)
	return &confirmation, nil
}
