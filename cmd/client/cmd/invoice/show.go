// cmd/client/cmd/invoice/show.go
package invoice

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"shiftbill/internal/app/client"
	"shiftbill/internal/app/client/schema"
	"shiftbill/internal/domain/billing"
)

var outputFormat string

var ShowCmd = &cobra.Command{
	Use:   "show [request-id]",
	Short: "Показать счет заявки",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := client.FromContext(cmd.Context())
		if err != nil {
			return err
		}

		session, err := app.Open(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("ошибка загрузки счета: %w", err)
		}

		if outputFormat == "json" {
			return printBundleJSON(os.Stdout, session.Original())
		}
		printBundle(os.Stdout, app.Normalizer(), session.Original())
		return nil
	},
}

func printBundle(w io.Writer, n *schema.Normalizer, b billing.Bundle) {
	inv := b.Invoice
	title := color.New(color.Bold)

	title.Fprintf(w, "Счет %s (заявка %s)\n", inv.ID, inv.RequestID)
	fmt.Fprintf(w, "Клиент:      %s %s <%s>\n", inv.FirstName, inv.LastName, inv.Email)
	fmt.Fprintf(w, "Компания:    %s\n", inv.CompanyName)
	fmt.Fprintf(w, "Место:       %s\n", inv.EventLocation)
	fmt.Fprintf(w, "PO:          %s", inv.PONumber)
	if inv.POLocked() {
		fmt.Fprint(w, color.YellowString(" (изменен, редактирование закрыто)"))
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Срок оплаты: %s, %s\n", billing.FormatDate(inv.DueDate), inv.PaymentTerms)
	fmt.Fprintf(w, "Статус:      %s\n", inv.Status)
	fmt.Fprintln(w)

	title.Fprintln(w, "Персонал")
	for i, l := range b.Staff {
		fmt.Fprintf(w, "  %d. %-22s %s  %s - %s  %d × $%.2f/ч × %.2f ч = $%.2f\n",
			i, l.Position, billing.FormatDate(l.Date),
			n.DisplayClock(l.Date, l.Start), n.DisplayClock(l.Date, l.End),
			l.Count, l.Rate, l.Hours(), l.Amount)
	}
	title.Fprintln(w, "Прочее")
	for i, c := range b.Custom {
		fmt.Fprintf(w, "  %d. %-30s %d × $%.2f = $%.2f\n", i, c.Description, c.Quantity, c.Rate, c.Total)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Подытог:         $%.2f\n", inv.Subtotal)
	if inv.DiscountAmount > 0 {
		fmt.Fprintf(w, "Скидка (%s):  -$%.2f\n", inv.DiscountType, inv.DiscountAmount)
	}
	fmt.Fprintf(w, "Доставка:        $%.2f\n", inv.ShippingCost)
	fmt.Fprintf(w, "Комиссия:        $%.2f\n", inv.TransactionFee)
	title.Fprintf(w, "Итого:           $%.2f\n", inv.Amount)
	fmt.Fprintf(w, "Оплачено:        $%.2f\n", inv.AmountPaid)
	fmt.Fprintf(w, "К оплате:        %s\n", color.GreenString("$%.2f", inv.Balance))
}

func printBundleJSON(w io.Writer, b billing.Bundle) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(b)
}

func init() {
	ShowCmd.Flags().StringVarP(&outputFormat, "output", "o", "text", "формат вывода (text, json)")
}
