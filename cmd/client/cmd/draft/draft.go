package draft

import (
	"github.com/spf13/cobra"
)

// DraftCmd родительская команда для черновиков писем по счетам
var DraftCmd = &cobra.Command{
	Use:   "draft",
	Short: "Черновики писем по счетам",
	Long: `Локальные черновики писем клиенту. Черновик хранится 72 часа
после последнего сохранения и не отправляется на сервер.`,
}

func init() {
	DraftCmd.AddCommand(SaveCmd)
	DraftCmd.AddCommand(ShowCmd)
	DraftCmd.AddCommand(ClearCmd)
	DraftCmd.AddCommand(PurgeCmd)
}
