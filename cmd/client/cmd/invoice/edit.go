// cmd/client/cmd/invoice/edit.go
package invoice

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"shiftbill/internal/app/client"
	"shiftbill/internal/app/client/editsession"
)

var (
	setFlags     []string
	addStaff     int
	addCustom    int
	removeStaff  []int
	removeCustom []int
	dryRun       bool
)

var EditCmd = &cobra.Command{
	Use:   "edit [request-id]",
	Short: "Изменить счет заявки",
	Long: `Применяет правки к рабочей копии счета и сохраняет ее на сервер.

Порядок применения: удаление строк, добавление пустых строк, изменение полей.
Добавленные строки получают индексы в конце списка.

Пути полей:
  invoice.<поле>            first_name, po_number, discount_type, discount_value, ...
  staff.<индекс>.<поле>     position, date, start_time, end_time, rate, count
  custom.<индекс>.<поле>    description, quantity, rate

Пример:
  shiftbill invoice edit 7f1c... --add-staff 1 \
    --set staff.2.position=Bartenders --set staff.2.date=2026-01-15 \
    --set staff.2.start_time=09:00 --set staff.2.end_time=17:00 --set staff.2.count=2`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := client.FromContext(cmd.Context())
		if err != nil {
			return err
		}

		session, err := app.Open(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("ошибка загрузки счета: %w", err)
		}

		edits := Edits{
			Set:          setFlags,
			AddStaff:     addStaff,
			AddCustom:    addCustom,
			RemoveStaff:  removeStaff,
			RemoveCustom: removeCustom,
		}
		if err := edits.Apply(session); err != nil {
			return err
		}

		if dryRun {
			printBundle(os.Stdout, app.Normalizer(), session.Edited())
			return nil
		}

		res, err := app.Save(cmd.Context(), session)
		if err != nil {
			if res != nil && res.Warning != "" {
				fmt.Fprintln(os.Stderr, color.YellowString("Внимание: %s", res.Warning))
			}
			if errors.Is(err, client.ErrPONumberLocked) {
				return fmt.Errorf("номер PO уже изменялся и больше не редактируется: %w", err)
			}
			return fmt.Errorf("ошибка сохранения: %w", err)
		}

		color.Green("Счет сохранен за %s", res.Duration.Round(time.Millisecond))
		printBundle(os.Stdout, app.Normalizer(), session.Original())
		return nil
	},
}

// Edits набор правок из флагов команды edit.
type Edits struct {
	Set          []string
	AddStaff     int
	AddCustom    int
	RemoveStaff  []int
	RemoveCustom []int
}

// Apply применяет правки к сессии. Удаление идет с конца, чтобы индексы не съезжали.
func (e Edits) Apply(s *editsession.Session) error {
	staff := slices.Clone(e.RemoveStaff)
	slices.Sort(staff)
	for _, i := range slices.Backward(slices.Compact(staff)) {
		if err := s.RemoveStaffLine(i); err != nil {
			return fmt.Errorf("удаление строки персонала %d: %w", i, err)
		}
	}

	custom := slices.Clone(e.RemoveCustom)
	slices.Sort(custom)
	for _, i := range slices.Backward(slices.Compact(custom)) {
		if err := s.RemoveCustomLine(i); err != nil {
			return fmt.Errorf("удаление произвольной строки %d: %w", i, err)
		}
	}

	for range e.AddStaff {
		s.AddStaffLine()
	}
	for range e.AddCustom {
		s.AddCustomLine()
	}

	for _, kv := range e.Set {
		path, value, ok := strings.Cut(kv, "=")
		if !ok {
			return fmt.Errorf("ожидается путь=значение: %q", kv)
		}
		if err := s.SetField(strings.TrimSpace(path), value); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	EditCmd.Flags().StringArrayVar(&setFlags, "set", nil, "изменить поле: путь=значение (можно повторять)")
	EditCmd.Flags().IntVar(&addStaff, "add-staff", 0, "добавить пустые строки персонала")
	EditCmd.Flags().IntVar(&addCustom, "add-custom", 0, "добавить пустые произвольные строки")
	EditCmd.Flags().IntSliceVar(&removeStaff, "remove-staff", nil, "удалить строки персонала по индексам")
	EditCmd.Flags().IntSliceVar(&removeCustom, "remove-custom", nil, "удалить произвольные строки по индексам")
	EditCmd.Flags().BoolVar(&dryRun, "dry-run", false, "показать результат без сохранения")
}
