package client

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/exp/slog"
	"golang.org/x/sync/errgroup"

	"shiftbill/internal/app/client/editsession"
	"shiftbill/internal/app/client/schema"
	"shiftbill/internal/domain/billing"
)

var (
	ErrSaveInProgress = errors.New("сохранение уже выполняется")
	ErrPONumberLocked = errors.New("PO number has already been edited")
)

// Backend REST-коллабораторы, с которыми работает сохранение.
type Backend interface {
	LoadBundle(ctx context.Context, requestID string) (billing.Bundle, error)
	GetInvoice(ctx context.Context, requestID string) (billing.Invoice, error)
	DeleteStaffLine(ctx context.Context, id string) error
	DeleteCustomLine(ctx context.Context, id string) error
	CreateStaffLine(ctx context.Context, line billing.StaffLine) (string, error)
	UpdateStaffLine(ctx context.Context, line billing.StaffLine) error
	UpdateRequest(ctx context.Context, inv billing.Invoice) error
	UpdateInvoice(ctx context.Context, inv billing.Invoice, withPO bool) error
	Recompute(ctx context.Context, requestID string, custom []billing.CustomLine) (schema.Recompute, error)
}

// Stage шаг саги сохранения.
type Stage string

const (
	StageIdle                       Stage = "idle"
	StageDeleting                   Stage = "deleting"
	StageUpserting                  Stage = "upserting"
	StageUpdatingParent             Stage = "updating_parent"
	StageUpdatingInvoiceProvisional Stage = "updating_invoice_provisional"
	StageRecomputing                Stage = "recomputing"
	StageUpdatingInvoiceFinal       Stage = "updating_invoice_final"
	StageReloading                  Stage = "reloading"
	StageDone                       Stage = "done"
	StageFailed                     Stage = "failed"
)

// StepError шаг, на котором сага остановилась. Выполненные шаги не откатываются.
type StepError struct {
	Stage Stage
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("шаг %s: %v", e.Stage, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Result результат сохранения.
type Result struct {
	Bundle          billing.Bundle
	Totals          billing.Totals
	CreatedStaffIDs []string
	Duration        time.Duration
}

// Orchestrator выполняет план правок упорядоченной серией запросов.
// Одновременно выполняется не больше одного сохранения.
type Orchestrator struct {
	backend Backend
	log     *slog.Logger

	mu       sync.Mutex
	isSaving bool
	stage    Stage
}

// NewOrchestrator создает оркестратор сохранения
func NewOrchestrator(backend Backend, log *slog.Logger) *Orchestrator {
	return &Orchestrator{
		backend: backend,
		log:     log.With("component", "save_saga"),
		stage:   StageIdle,
	}
}

// Stage текущий или последний шаг.
func (o *Orchestrator) Stage() Stage {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.stage
}

func (o *Orchestrator) setStage(s Stage) {
	o.mu.Lock()
	o.stage = s
	o.mu.Unlock()
}

// Run выполняет сагу: удаления, создания и обновления строк, заявка,
// предварительное обновление счета, пересчет на сервере, финальное обновление счета
// и перечитывание данных. Ошибка любого шага прерывает сагу.
func (o *Orchestrator) Run(ctx context.Context, plan editsession.Plan) (*Result, error) {
	o.mu.Lock()
	if o.isSaving {
		o.mu.Unlock()
		return nil, ErrSaveInProgress
	}
	o.isSaving = true
	o.stage = StageIdle
	o.mu.Unlock()

	defer func() {
		o.mu.Lock()
		o.isSaving = false
		o.mu.Unlock()
	}()

	start := time.Now()
	result := &Result{}
	log := o.log.With("request_id", plan.RequestID)

	if plan.POChanged && plan.POEditCounter >= 1 {
		log.Warn("Номер PO уже менялся, сохранение отклонено", "po_edit_counter", plan.POEditCounter)
		return result, o.fail(StageIdle, ErrPONumberLocked)
	}

	log.Info("Начало сохранения",
		"create", len(plan.StaffToCreate),
		"update", len(plan.StaffToUpdate),
		"custom_create", len(plan.CustomToCreate),
		"custom_update", len(plan.CustomToUpdate),
		"delete_staff", len(plan.DeletedStaffIDs),
		"delete_custom", len(plan.DeletedCustomIDs),
	)
	if plan.Empty() {
		log.Info("Строки не менялись, сохраняются только заявка и счет")
	}

	// 1. Удаления
	o.setStage(StageDeleting)
	if err := batch(ctx, plan.DeletedStaffIDs, func(ctx context.Context, id string) error {
		if err := o.backend.DeleteStaffLine(ctx, id); err != nil {
			log.Error("Ошибка удаления строки персонала", "id", id, "error", err)
			return err
		}
		return nil
	}); err != nil {
		return result, o.fail(StageDeleting, err)
	}
	if err := batch(ctx, plan.DeletedCustomIDs, func(ctx context.Context, id string) error {
		if err := o.backend.DeleteCustomLine(ctx, id); err != nil {
			log.Error("Ошибка удаления произвольной строки", "id", id, "error", err)
			return err
		}
		return nil
	}); err != nil {
		return result, o.fail(StageDeleting, err)
	}

	// 2. Создания и обновления строк персонала
	o.setStage(StageUpserting)
	var createdMu sync.Mutex
	upsert := func(ctx context.Context, line billing.StaffLine) error {
		if line.ID != "" {
			if err := o.backend.UpdateStaffLine(ctx, line); err != nil {
				log.Error("Ошибка обновления строки персонала", "id", line.ID, "error", err)
				return err
			}
			return nil
		}
		id, err := o.backend.CreateStaffLine(ctx, line)
		if err != nil {
			log.Error("Ошибка создания строки персонала",
				"position", line.Position,
				"date", billing.FormatDate(line.Date),
				"error", err)
			return err
		}
		createdMu.Lock()
		result.CreatedStaffIDs = append(result.CreatedStaffIDs, id)
		createdMu.Unlock()
		return nil
	}
	lines := make([]billing.StaffLine, 0, len(plan.StaffToCreate)+len(plan.StaffToUpdate))
	lines = append(lines, plan.StaffToCreate...)
	lines = append(lines, plan.StaffToUpdate...)
	if err := batch(ctx, lines, upsert); err != nil {
		if len(result.CreatedStaffIDs) > 0 {
			log.Warn("Созданные строки остались на сервере", "ids", result.CreatedStaffIDs)
		}
		return result, o.fail(StageUpserting, err)
	}

	// 3. Поля клиента в заявке, номер PO сюда не входит
	o.setStage(StageUpdatingParent)
	if err := o.backend.UpdateRequest(ctx, plan.Invoice); err != nil {
		log.Error("Ошибка обновления заявки", "error", err)
		return result, o.fail(StageUpdatingParent, err)
	}

	// 4. Предварительное обновление счета
	o.setStage(StageUpdatingInvoiceProvisional)
	withPO := false
	if plan.POChanged {
		current, err := o.backend.GetInvoice(ctx, plan.RequestID)
		if err != nil {
			log.Error("Ошибка получения счета", "error", err)
			return result, o.fail(StageUpdatingInvoiceProvisional, err)
		}
		if current.POLocked() {
			log.Warn("Сервер сообщает, что номер PO уже менялся", "invoice_id", current.ID)
			return result, o.fail(StageUpdatingInvoiceProvisional, ErrPONumberLocked)
		}
		withPO = true
	}
	if err := o.backend.UpdateInvoice(ctx, plan.Invoice, withPO); err != nil {
		log.Error("Ошибка обновления счета", "invoice_id", plan.Invoice.ID, "with_po", withPO, "error", err)
		return result, o.fail(StageUpdatingInvoiceProvisional, err)
	}

	// 5. Пересчет итогов на сервере, он же сохраняет произвольные строки
	o.setStage(StageRecomputing)
	recomputed, err := o.backend.Recompute(ctx, plan.RequestID, plan.Custom)
	if err != nil {
		log.Error("Ошибка пересчета итогов", "custom", len(plan.Custom), "error", err)
		return result, o.fail(StageRecomputing, err)
	}
	result.Totals = recomputed.Totals

	// 6. Финальное обновление счета итогами сервера
	o.setStage(StageUpdatingInvoiceFinal)
	final := plan.Invoice
	final.Subtotal = recomputed.Totals.Subtotal
	final.DiscountAmount = recomputed.Totals.DiscountAmount
	final.TransactionFee = recomputed.Totals.TransactionFee
	final.ServiceFee = recomputed.Totals.ServiceFee
	final.Amount = recomputed.Totals.GrandTotal
	final.Balance = recomputed.Totals.Balance(final.AmountPaid)
	if err := o.backend.UpdateInvoice(ctx, final, false); err != nil {
		log.Error("Ошибка записи итогов счета", "invoice_id", final.ID, "amount", final.Amount, "error", err)
		return result, o.fail(StageUpdatingInvoiceFinal, err)
	}

	// 7. Перечитываем состояние сервера
	o.setStage(StageReloading)
	bundle, err := o.backend.LoadBundle(ctx, plan.RequestID)
	if err != nil {
		log.Error("Ошибка перечитывания счета", "error", err)
		return result, o.fail(StageReloading, err)
	}
	result.Bundle = bundle
	result.Duration = time.Since(start)

	o.setStage(StageDone)
	log.Info("Сохранение завершено",
		"duration", result.Duration,
		"created", len(result.CreatedStaffIDs),
		"amount", final.Amount,
	)
	return result, nil
}

func (o *Orchestrator) fail(stage Stage, err error) error {
	o.setStage(StageFailed)
	return &StepError{Stage: stage, Err: err}
}

// batch выполняет fn для всех элементов параллельно. Первая ошибка отменяет
// контекст остальных вызовов.
func batch[T any](ctx context.Context, items []T, fn func(context.Context, T) error) error {
	if len(items) == 0 {
		return nil
	}
	g, gctx := errgroup.WithContext(ctx)
	for _, item := range items {
		g.Go(func() error {
			return fn(gctx, item)
		})
	}
	return g.Wait()
}
