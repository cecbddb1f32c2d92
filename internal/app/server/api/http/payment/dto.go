package payment

type input struct {
	InvoiceID string `path:"invoiceId" format:"uuid" doc:"ID счета"`
}

type output struct {
	Body ReferenceBody
}

// ReferenceBody ссылка платежного провайдера.
type ReferenceBody struct {
	Reference string `json:"reference" example:"cs_4f1c2d9e8b7a4c3d9e8f7a6b5c4d3e2f" doc:"Ссылка на оплату или возврат"`
}
