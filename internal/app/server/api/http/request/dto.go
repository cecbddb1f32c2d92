package request

import "shiftbill/internal/domain/invoice"

type getInput struct {
	ID string `path:"id" format:"uuid" doc:"ID заявки"`
}

type updateInput struct {
	ID   string `path:"id" format:"uuid" doc:"ID заявки"`
	Body invoice.RequestUpdate
}

type output struct {
	Body invoice.Request
}
