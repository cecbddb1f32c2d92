// cmd/client/cmd/draft/commands.go
package draft

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"shiftbill/internal/app/client"
)

var (
	subject     string
	cc          string
	bcc         string
	replyTo     string
	content     string
	contentFile string
)

var SaveCmd = &cobra.Command{
	Use:   "save [request-id]",
	Short: "Сохранить черновик письма",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := client.FromContext(cmd.Context())
		if err != nil {
			return err
		}

		body := content
		if contentFile != "" {
			data, err := readContent(contentFile)
			if err != nil {
				return fmt.Errorf("ошибка чтения текста письма: %w", err)
			}
			body = data
		}

		d := client.Draft{
			RequestID: args[0],
			Subject:   subject,
			CC:        cc,
			BCC:       bcc,
			ReplyTo:   replyTo,
			Content:   body,
		}
		if err := app.SaveDraft(d); err != nil {
			return fmt.Errorf("ошибка сохранения черновика: %w", err)
		}
		color.Green("Черновик сохранен")
		return nil
	},
}

var ShowCmd = &cobra.Command{
	Use:   "show [request-id]",
	Short: "Показать черновик письма",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := client.FromContext(cmd.Context())
		if err != nil {
			return err
		}

		d, err := app.GetDraft(args[0])
		if errors.Is(err, client.ErrDraftNotFound) {
			fmt.Println("Черновика нет или он устарел")
			return nil
		}
		if err != nil {
			return fmt.Errorf("ошибка чтения черновика: %w", err)
		}
		printDraft(os.Stdout, d)
		return nil
	},
}

var ClearCmd = &cobra.Command{
	Use:   "clear [request-id]",
	Short: "Удалить черновик письма",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := client.FromContext(cmd.Context())
		if err != nil {
			return err
		}
		if err := app.DeleteDraft(args[0]); err != nil {
			return fmt.Errorf("ошибка удаления черновика: %w", err)
		}
		fmt.Println("Черновик удален")
		return nil
	},
}

var PurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Удалить просроченные черновики",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := client.FromContext(cmd.Context())
		if err != nil {
			return err
		}
		n, err := app.PurgeDrafts()
		if err != nil {
			return fmt.Errorf("ошибка очистки черновиков: %w", err)
		}
		fmt.Printf("Удалено черновиков: %d\n", n)
		return nil
	},
}

func readContent(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	return string(data), err
}

func printDraft(w io.Writer, d *client.Draft) {
	fmt.Fprintf(w, "Тема:      %s\n", d.Subject)
	if d.CC != "" {
		fmt.Fprintf(w, "Копия:     %s\n", d.CC)
	}
	if d.BCC != "" {
		fmt.Fprintf(w, "Скрытая:   %s\n", d.BCC)
	}
	if d.ReplyTo != "" {
		fmt.Fprintf(w, "Ответ на:  %s\n", d.ReplyTo)
	}
	fmt.Fprintf(w, "Сохранен:  %s\n", d.SavedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintln(w)
	fmt.Fprintln(w, d.Content)
}

func init() {
	SaveCmd.Flags().StringVar(&subject, "subject", "", "тема письма")
	SaveCmd.Flags().StringVar(&cc, "cc", "", "копия")
	SaveCmd.Flags().StringVar(&bcc, "bcc", "", "скрытая копия")
	SaveCmd.Flags().StringVar(&replyTo, "reply-to", "", "адрес для ответа")
	SaveCmd.Flags().StringVar(&content, "content", "", "текст письма")
	SaveCmd.Flags().StringVar(&contentFile, "content-file", "", "файл с текстом письма, - для stdin")
}
