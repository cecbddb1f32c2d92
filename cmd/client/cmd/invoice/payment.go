// cmd/client/cmd/invoice/payment.go
package invoice

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"shiftbill/internal/app/client"
)

var CheckoutCmd = &cobra.Command{
	Use:   "checkout [request-id]",
	Short: "Получить ссылку на оплату счета",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return paymentReference(cmd, args[0], "Ссылка на оплату", (*client.App).Checkout)
	},
}

var RefundCmd = &cobra.Command{
	Use:   "refund [request-id]",
	Short: "Оформить возврат по счету",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return paymentReference(cmd, args[0], "Возврат оформлен", (*client.App).Refund)
	},
}

func paymentReference(
	cmd *cobra.Command,
	requestID, label string,
	call func(*client.App, context.Context, string) (string, error),
) error {
	app, err := client.FromContext(cmd.Context())
	if err != nil {
		return err
	}

	inv, err := app.Invoice(cmd.Context(), requestID)
	if err != nil {
		return fmt.Errorf("ошибка загрузки счета: %w", err)
	}

	ref, err := call(app, cmd.Context(), inv.ID)
	if err != nil {
		return err
	}
	fmt.Printf("%s: %s\n", label, color.CyanString(ref))
	return nil
}
