package editsession

import "shiftbill/internal/domain/billing"

// Plan набор изменений, которые нужно отправить на сервер при сохранении.
// Все существующие строки уходят как обновления, без сравнения с оригиналом.
type Plan struct {
	RequestID string
	Invoice   billing.Invoice

	StaffToCreate  []billing.StaffLine
	StaffToUpdate  []billing.StaffLine
	CustomToCreate []billing.CustomLine
	CustomToUpdate []billing.CustomLine
	// Custom все произвольные строки в порядке сессии.
	Custom []billing.CustomLine

	DeletedStaffIDs  []string
	DeletedCustomIDs []string

	// POChanged номер PO отличается от исходного.
	POChanged bool
	// POEditCounter значение счетчика на момент входа в редактирование.
	POEditCounter int
}

// Empty в плане нет ни одной операции над строками.
func (p Plan) Empty() bool {
	return len(p.StaffToCreate) == 0 && len(p.StaffToUpdate) == 0 &&
		len(p.Custom) == 0 &&
		len(p.DeletedStaffIDs) == 0 && len(p.DeletedCustomIDs) == 0
}
