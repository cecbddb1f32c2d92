package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/exp/slog"
	"golang.org/x/sync/errgroup"

	"shiftbill/internal/app/client/config"
	"shiftbill/internal/app/client/schema"
	"shiftbill/internal/domain/billing"
)

const (
	apiPrefix        = "/api"
	codePONumberLock = "po_number_locked"
)

// APIError ответ сервера со статусом 4xx/5xx.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("ошибка сервера: статус %d", e.Status)
	}
	return fmt.Sprintf("ошибка сервера: статус %d: %s", e.Status, e.Message)
}

// Is сопоставляет отказ сервера по номеру PO с ErrPONumberLocked:
// по коду ошибки, а для старых серверов по тексту сообщения.
func (e *APIError) Is(target error) bool {
	if target != ErrPONumberLocked {
		return false
	}
	return e.Code == codePONumberLock ||
		strings.Contains(e.Message, ErrPONumberLocked.Error())
}

type httpClient struct {
	client     *http.Client
	normalizer *schema.Normalizer
	log        *slog.Logger
	baseURL    string
	userAgent  string
}

// NewHTTPClient создает REST-клиент к серверу счетов
func NewHTTPClient(cfg *config.Config, normalizer *schema.Normalizer, log *slog.Logger) *httpClient {
	client := &http.Client{
		Timeout: cfg.RequestTimeout,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			IdleConnTimeout:     90 * time.Second,
			MaxIdleConnsPerHost: 10,
		},
	}

	scheme := "http://"
	if cfg.EnableTLS {
		scheme = "https://"
	}

	return &httpClient{
		client:     client,
		normalizer: normalizer,
		log:        log.With("component", "http_client"),
		baseURL:    scheme + cfg.ServerAddress,
		userAgent:  "ShiftBill-Client/1.0",
	}
}

// HealthCheck проверяет доступность сервера
func (h *httpClient) HealthCheck(ctx context.Context) error {
	resp, err := h.doRequest(ctx, http.MethodGet, "/api/v1/health", nil)
	if err != nil {
		return fmt.Errorf("сервер недоступен: %w", err)
	}
	return h.parseResponse(resp, nil)
}

// LoadBundle загружает счет, заявку и строки одновременно.
func (h *httpClient) LoadBundle(ctx context.Context, requestID string) (billing.Bundle, error) {
	var (
		invoiceRaw, requestRaw schema.Raw
		staffRaw, customRaw    []schema.Raw
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return h.get(gctx, "/invoices/request/"+url.PathEscape(requestID), &invoiceRaw)
	})
	g.Go(func() error {
		return h.get(gctx, "/requests/"+url.PathEscape(requestID), &requestRaw)
	})
	g.Go(func() error {
		return h.get(gctx, "/staff-requirements/request/"+url.PathEscape(requestID), &staffRaw)
	})
	g.Go(func() error {
		return h.get(gctx, "/custom-line-items/request/"+url.PathEscape(requestID), &customRaw)
	})
	if err := g.Wait(); err != nil {
		return billing.Bundle{}, fmt.Errorf("ошибка загрузки счета %s: %w", requestID, err)
	}

	return billing.Bundle{
		Invoice: schema.Invoice(invoiceRaw, requestRaw),
		Staff:   h.normalizer.StaffList(staffRaw),
		Custom:  schema.CustomList(customRaw),
	}, nil
}

// GetInvoice читает счет заявки без полей клиента.
func (h *httpClient) GetInvoice(ctx context.Context, requestID string) (billing.Invoice, error) {
	var raw schema.Raw
	if err := h.get(ctx, "/invoices/request/"+url.PathEscape(requestID), &raw); err != nil {
		return billing.Invoice{}, err
	}
	return schema.Invoice(raw, nil), nil
}

func (h *httpClient) DeleteStaffLine(ctx context.Context, id string) error {
	return h.send(ctx, http.MethodDelete, "/staff-requirements/"+url.PathEscape(id), nil, nil)
}

func (h *httpClient) DeleteCustomLine(ctx context.Context, id string) error {
	return h.send(ctx, http.MethodDelete, "/custom-line-items/"+url.PathEscape(id), nil, nil)
}

// CreateStaffLine создает строку персонала и возвращает ее идентификатор.
func (h *httpClient) CreateStaffLine(ctx context.Context, line billing.StaffLine) (string, error) {
	var raw schema.Raw
	if err := h.send(ctx, http.MethodPost, "/staff-requirements", h.normalizer.StaffPayload(line), &raw); err != nil {
		return "", err
	}
	created := h.normalizer.Staff(raw)
	if created.ID == "" {
		return "", errors.New("сервер не вернул идентификатор строки")
	}
	return created.ID, nil
}

func (h *httpClient) UpdateStaffLine(ctx context.Context, line billing.StaffLine) error {
	return h.send(ctx, http.MethodPut, "/staff-requirements/"+url.PathEscape(line.ID), h.normalizer.StaffPayload(line), nil)
}

// UpdateRequest обновляет поля клиента в заявке.
func (h *httpClient) UpdateRequest(ctx context.Context, inv billing.Invoice) error {
	return h.send(ctx, http.MethodPut, "/requests/"+url.PathEscape(inv.RequestID), schema.RequestPayloadOf(inv), nil)
}

func (h *httpClient) UpdateInvoice(ctx context.Context, inv billing.Invoice, withPO bool) error {
	return h.send(ctx, http.MethodPut, "/invoices/"+url.PathEscape(inv.ID), schema.InvoicePayloadOf(inv, withPO), nil)
}

// Recompute отправляет произвольные строки на пересчет и получает итоги сервера.
func (h *httpClient) Recompute(ctx context.Context, requestID string, custom []billing.CustomLine) (schema.Recompute, error) {
	var raw schema.Raw
	body := schema.CustomLinePayloads(custom)
	if err := h.send(ctx, http.MethodPut, "/rates/"+url.PathEscape(requestID), body, &raw); err != nil {
		return schema.Recompute{}, err
	}
	return schema.RecomputeResult(raw), nil
}

// Checkout запрашивает ссылку на оплату счета.
func (h *httpClient) Checkout(ctx context.Context, invoiceID string) (string, error) {
	return h.paymentReference(ctx, "/payments/checkout/"+url.PathEscape(invoiceID))
}

// Refund запрашивает возврат по счету.
func (h *httpClient) Refund(ctx context.Context, invoiceID string) (string, error) {
	return h.paymentReference(ctx, "/payments/refund/"+url.PathEscape(invoiceID))
}

func (h *httpClient) paymentReference(ctx context.Context, path string) (string, error) {
	var out struct {
		Reference string `json:"reference"`
	}
	if err := h.send(ctx, http.MethodPost, path, nil, &out); err != nil {
		return "", err
	}
	return out.Reference, nil
}

func (h *httpClient) get(ctx context.Context, path string, result any) error {
	return h.send(ctx, http.MethodGet, path, nil, result)
}

func (h *httpClient) send(ctx context.Context, method, path string, body, result any) error {
	resp, err := h.doRequest(ctx, method, apiPrefix+path, body)
	if err != nil {
		return err
	}
	return h.parseResponse(resp, result)
}

func (h *httpClient) doRequest(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("ошибка маршалинга тела запроса: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания запроса: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", h.userAgent)

	h.log.Debug("Отправка запроса",
		"method", method,
		"url", req.URL.String(),
	)

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения запроса: %w", err)
	}

	return resp, nil
}

func (h *httpClient) parseResponse(resp *http.Response, result any) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("ошибка чтения ответа: %w", err)
	}

	h.log.Debug("Получен ответ",
		"status", resp.StatusCode,
		"body", string(body),
	)

	if resp.StatusCode >= 400 {
		return apiError(resp.StatusCode, body)
	}

	if result != nil && len(body) > 0 {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("ошибка парсинга ответа: %w", err)
		}
	}

	return nil
}

// apiError разбирает тело ошибки: huma (title/detail/errors) или {"error": "..."}.
func apiError(status int, body []byte) *APIError {
	e := &APIError{Status: status}

	var errResp struct {
		Title  string `json:"title"`
		Detail string `json:"detail"`
		Error  string `json:"error"`
		Errors []struct {
			Message  string `json:"message"`
			Location string `json:"location"`
			Value    any    `json:"value"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(body, &errResp); err != nil {
		e.Message = strings.TrimSpace(string(body))
		return e
	}

	switch {
	case errResp.Detail != "":
		e.Message = errResp.Detail
	case errResp.Error != "":
		e.Message = errResp.Error
	default:
		e.Message = errResp.Title
	}
	for _, d := range errResp.Errors {
		if d.Location == "code" {
			e.Code = fmt.Sprint(d.Value)
		}
	}
	return e
}
