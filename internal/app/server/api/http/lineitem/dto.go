package lineitem

import "shiftbill/internal/domain/invoice"

type listInput struct {
	RequestID string `path:"requestId" format:"uuid" doc:"ID заявки"`
}

type listOutput struct {
	Body []invoice.CustomLineItem
}

type createInput struct {
	Body lineItemBody
}

type deleteInput struct {
	ID string `path:"id" format:"uuid" doc:"ID произвольной строки"`
}

type output struct {
	Body invoice.CustomLineItem
}

type lineItemBody struct {
	RequestID   string  `json:"request_id" format:"uuid" doc:"ID заявки"`
	Description string  `json:"description" minLength:"1" doc:"Описание строки"`
	Quantity    int     `json:"quantity" minimum:"0" doc:"Количество"`
	Rate        float64 `json:"rate" minimum:"0" doc:"Цена за единицу"`
}
