package invoice

import (
	"github.com/spf13/cobra"
)

// InvoiceCmd родительская команда для операций со счетами
var InvoiceCmd = &cobra.Command{
	Use:   "invoice",
	Short: "Работа со счетами",
	Long:  `Просмотр и редактирование счетов заявок, ссылки на оплату и возврат.`,
}

func init() {
	InvoiceCmd.AddCommand(ShowCmd)
	InvoiceCmd.AddCommand(EditCmd)
	InvoiceCmd.AddCommand(CheckoutCmd)
	InvoiceCmd.AddCommand(RefundCmd)
}
