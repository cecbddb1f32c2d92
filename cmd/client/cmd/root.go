// cmd/client/cmd/root.go
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/exp/slog"

	"shiftbill/cmd/client/cmd/draft"
	"shiftbill/cmd/client/cmd/invoice"
	"shiftbill/internal/app/client"
	"shiftbill/internal/app/client/config"
	"shiftbill/internal/utils/logger"
)

var (
	cfgFile   string
	cfg       *config.Config
	log       *slog.Logger
	app       *client.App
	serverURL string
)

var rootCmd = &cobra.Command{
	Use:   "shiftbill",
	Short: "ShiftBill - клиент редактирования счетов за персонал",
	Long: `ShiftBill: клиент для просмотра и редактирования счетов по заявкам на персонал.

Правки копятся в локальной рабочей копии и отправляются на сервер одной
командой сохранения. Итоги пересчитываются на клиенте при каждой правке
и подтверждаются сервером после сохранения.`,
	PersistentPreRunE:  setupApp,
	PersistentPostRunE: closeApp,
	SilenceUsage:       true,
	SilenceErrors:      true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка: %v\n", err)
		os.Exit(1)
	}
}

func setupApp(cmd *cobra.Command, _ []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}

	// Переопределяем настройки из флагов командной строки
	if serverURL != "" {
		cfg.ServerAddress = serverURL
	}

	log = logger.New(cfg.Env)

	app, err = client.New(cfg, log)
	if err != nil {
		return fmt.Errorf("ошибка инициализации приложения: %w", err)
	}

	cmd.SetContext(client.WithApp(cmd.Context(), app))
	return nil
}

func closeApp(_ *cobra.Command, _ []string) error {
	if app == nil {
		return nil
	}
	return app.Close()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "конфигурационный файл YAML")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "адрес сервера ShiftBill")

	rootCmd.AddCommand(invoice.InvoiceCmd)
	rootCmd.AddCommand(draft.DraftCmd)
	rootCmd.AddCommand(pingCmd)
}

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Проверить соединение с сервером",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := app.CheckConnection(); err != nil {
			return err
		}
		fmt.Println("Сервер доступен")
		return nil
	},
}
