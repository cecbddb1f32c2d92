package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/exp/slog"

	"shiftbill/internal/app/client/config"
	"shiftbill/internal/app/client/editsession"
	"shiftbill/internal/app/client/schema"
	"shiftbill/internal/domain/billing"
)

// ReloadWarning сообщение пользователю после неудачного сохранения.
const ReloadWarning = "сохранение прервано, часть изменений могла примениться: данные перечитаны с сервера, повторите правки"

// Payments ссылки платежного провайдера.
type Payments interface {
	Checkout(ctx context.Context, invoiceID string) (string, error)
	Refund(ctx context.Context, invoiceID string) (string, error)
}

type App struct {
	config     *config.Config
	log        *slog.Logger
	normalizer *schema.Normalizer
	httpClient *httpClient
	backend    Backend
	payments   Payments
	drafts     DraftStore
	saga       *Orchestrator
}

func New(cfg *config.Config, log *slog.Logger) (*App, error) {
	normalizer, err := schema.New(cfg.TimeZone, schema.ClockFormat(cfg.ClockFormat))
	if err != nil {
		return nil, fmt.Errorf("ошибка инициализации часового пояса: %w", err)
	}

	httpCl := NewHTTPClient(cfg, normalizer, log)

	var drafts DraftStore
	sqliteDrafts, err := NewSQLiteDraftStore(cfg.DraftPath, DraftTTL)
	if err != nil {
		log.Warn("Не удалось инициализировать SQLite, черновики хранятся в памяти", "error", err)
		drafts = NewMemoryDraftStore(DraftTTL, nil)
	} else {
		drafts = sqliteDrafts
	}

	app := newApp(normalizer, httpCl, httpCl, drafts, log)
	app.config = cfg
	app.httpClient = httpCl
	return app, nil
}

func newApp(normalizer *schema.Normalizer, backend Backend, payments Payments, drafts DraftStore, log *slog.Logger) *App {
	return &App{
		log:        log,
		normalizer: normalizer,
		backend:    backend,
		payments:   payments,
		drafts:     drafts,
		saga:       NewOrchestrator(backend, log),
	}
}

// Normalizer форматирование времени для вывода.
func (a *App) Normalizer() *schema.Normalizer {
	return a.normalizer
}

// CheckConnection проверяет соединение с сервером
func (a *App) CheckConnection() error {
	if a.httpClient == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return a.httpClient.HealthCheck(ctx)
}

// Open загружает счет заявки и открывает над ним сессию редактирования.
func (a *App) Open(ctx context.Context, requestID string) (*editsession.Session, error) {
	bundle, err := a.backend.LoadBundle(ctx, requestID)
	if err != nil {
		return nil, err
	}
	return editsession.New(bundle, editsession.WithToday(a.normalizer.Today)), nil
}

// Save сохраняет правки сессии. При успехе сессия принимает свежий снимок сервера.
// При ошибке сессия перечитывается с сервера, а в SaveResult.Warning попадает предупреждение.
func (a *App) Save(ctx context.Context, session *editsession.Session) (*SaveResult, error) {
	plan, err := session.Diff()
	if err != nil {
		return nil, err
	}

	res, err := a.saga.Run(ctx, plan)
	if err == nil {
		session.Reset(res.Bundle)
		return &SaveResult{Result: *res}, nil
	}

	out := &SaveResult{}
	if res != nil {
		out.Result = *res
	}
	if errors.Is(err, ErrSaveInProgress) {
		return out, err
	}

	bundle, reloadErr := a.backend.LoadBundle(ctx, plan.RequestID)
	if reloadErr != nil {
		a.log.Error("Не удалось перечитать счет после ошибки сохранения",
			"request_id", plan.RequestID,
			"error", reloadErr)
		out.Warning = "сохранение прервано, данные не удалось перечитать: " + reloadErr.Error()
		return out, err
	}

	session.Reset(bundle)
	out.Warning = ReloadWarning
	a.log.Warn("Сохранение прервано, сессия перечитана с сервера",
		"request_id", plan.RequestID,
		"error", err)
	return out, err
}

// SaveResult результат сохранения для пользователя.
type SaveResult struct {
	Result
	Warning string
}

// Invoice счет заявки без строк.
func (a *App) Invoice(ctx context.Context, requestID string) (billing.Invoice, error) {
	return a.backend.GetInvoice(ctx, requestID)
}

// Checkout ссылка на оплату счета.
func (a *App) Checkout(ctx context.Context, invoiceID string) (string, error) {
	return a.payments.Checkout(ctx, invoiceID)
}

// Refund ссылка на возврат по счету.
func (a *App) Refund(ctx context.Context, invoiceID string) (string, error) {
	return a.payments.Refund(ctx, invoiceID)
}

func (a *App) SaveDraft(d Draft) error {
	return a.drafts.SaveDraft(d)
}

func (a *App) GetDraft(requestID string) (*Draft, error) {
	return a.drafts.GetDraft(requestID)
}

func (a *App) DeleteDraft(requestID string) error {
	return a.drafts.DeleteDraft(requestID)
}

// PurgeDrafts удаляет просроченные черновики.
func (a *App) PurgeDrafts() (int, error) {
	n, err := a.drafts.Purge()
	if err != nil {
		return 0, err
	}
	if n > 0 {
		a.log.Debug("Удалены просроченные черновики", "count", n)
	}
	return n, nil
}

func (a *App) Close() error {
	return a.drafts.Close()
}
