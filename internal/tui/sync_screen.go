package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"

	"github.com/MKhiriev/go-registry-keeper/internal/telemetry"
	"github.com/MKhiriev/go-registry-keeper/models"
)

type syncModel struct {
	spinner    spinner.Model
	running    bool
	report     models.SweepReport
	summary    telemetry.Summary
	hasSummary bool
	err        error
}

func newSyncModel() syncModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	return syncModel{spinner: s}
}

func (m syncModel) View() string {
	if m.running {
		return renderPage("СИНХРОНИЗАЦИЯ", m.spinner.View()+" Синхронизация...", "")
	}

	var b strings.Builder
	if m.err != nil {
		b.WriteString(errorStyle.Render(humanizeError(m.err)))
		b.WriteString("\n\n")
	}

	r := m.report
	b.WriteString("Последний запуск:\n")
	fmt.Fprintf(&b, "  отправлено записей: %d\n", r.Pushed)
	fmt.Fprintf(&b, "  отправлено удалений: %d\n", r.Deleted)
	fmt.Fprintf(&b, "  отклонено: %d\n", r.Failed)
	fmt.Fprintf(&b, "  отложено: %d\n", r.Parked)
	if r.Unreachable {
		b.WriteString("  сервер недоступен, синхронизация будет выполнена позже\n")
	}

	if m.hasSummary {
		s := m.summary
		b.WriteString("\nЗа сеанс:\n")
		fmt.Fprintf(&b, "  синхронизаций: %d\n", s.Sweeps)
		fmt.Fprintf(&b, "  отправлено: %d\n", s.Drained)
		fmt.Fprintf(&b, "  отклонено: %d\n", s.Failed)
		fmt.Fprintf(&b, "  отложено: %d\n", s.Parked)
		fmt.Fprintf(&b, "  сохранено локально: %d\n", s.Staged)
	}

	return renderPage("СИНХРОНИЗАЦИЯ", b.String(), "s повторить  esc назад")
}
