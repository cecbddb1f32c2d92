package staff

import (
	"time"

	"shiftbill/internal/domain/billing"
	"shiftbill/internal/domain/invoice"
)

type listInput struct {
	RequestID string `path:"requestId" format:"uuid" doc:"ID заявки"`
}

type listOutput struct {
	Body []invoice.StaffRequirement
}

type createInput struct {
	Body staffBody
}

type updateInput struct {
	ID   string `path:"id" format:"uuid" doc:"ID строки персонала"`
	Body staffBody
}

type deleteInput struct {
	ID string `path:"id" format:"uuid" doc:"ID строки персонала"`
}

type output struct {
	Body invoice.StaffRequirement
}

// staffBody тело создания и обновления. Amount игнорируется: сумму считает сервер.
type staffBody struct {
	RequestID string           `json:"request_id,omitempty" doc:"ID заявки"`
	Position  billing.Position `json:"position"`
	Date      time.Time        `json:"date,omitempty" doc:"Дата смены, полночь UTC"`
	StartTime time.Time        `json:"start_time" doc:"Начало смены, UTC"`
	EndTime   time.Time        `json:"end_time" doc:"Конец смены, UTC"`
	Rate      float64          `json:"rate" minimum:"0" doc:"Ставка в час"`
	Count     int              `json:"count" minimum:"0" doc:"Количество сотрудников"`
	Amount    float64          `json:"amount,omitempty" doc:"Не используется"`
}
