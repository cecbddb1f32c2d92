package invoice

import "shiftbill/internal/domain/invoice"

type getInput struct {
	RequestID string `path:"requestId" format:"uuid" doc:"ID заявки"`
}

type updateInput struct {
	ID   string `path:"id" format:"uuid" doc:"ID счета"`
	Body invoice.InvoiceUpdate
}

type output struct {
	Body invoice.Invoice
}

type ratesInput struct {
	RequestID string `path:"requestId" format:"uuid" doc:"ID заявки"`
	Body      []rateLine
}

type ratesOutput struct {
	Body invoice.Recomputation
}

// rateLine произвольная строка в теле пересчета. Без uuid строка создается.
type rateLine struct {
	UUID        string  `json:"uuid,omitempty" doc:"ID существующей строки"`
	RequestID   string  `json:"request_id,omitempty" doc:"ID заявки, игнорируется"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	Rate        float64 `json:"rate"`
}
