package tui

import (
	"strconv"
	"strings"

	"github.com/MKhiriev/go-registry-keeper/models"
)

type detailModel struct {
	record        models.Record
	origin        models.Origin
	pending       bool
	loading       bool
	components    []string
	componentsErr error
	compIdx       int
	status        string
}

func newDetailModel(rec models.Record, pending bool) detailModel {
	return detailModel{
		record:  rec,
		origin:  models.OriginRemote,
		pending: pending,
		loading: true,
	}
}

func (m detailModel) currentComponent() (string, bool) {
	if m.compIdx < 0 || m.compIdx >= len(m.components) {
		return "", false
	}
	return m.components[m.compIdx], true
}

func (m *detailModel) setComponents(components []string) {
	m.components = components
	m.componentsErr = nil
	if m.compIdx >= len(m.components) {
		m.compIdx = len(m.components) - 1
	}
	if m.compIdx < 0 {
		m.compIdx = 0
	}
}

func (m detailModel) View() string {
	var b strings.Builder

	rec := m.record
	b.WriteString(field("ID", strconv.FormatInt(rec.ID, 10)))
	b.WriteString(field("Название", rec.Name))
	b.WriteString(field("Тип", valueOrDash(rec.Kind)))
	b.WriteString(field("Статус", valueOrDash(rec.Status)))
	b.WriteString(field("Год", yearOrDash(rec.Year)))
	b.WriteString(field("Расположение", valueOrDash(rec.Location)))
	b.WriteString(field("Источник", originName(m.origin)))
	if m.pending {
		b.WriteString(pendingStyle.Render("* есть неотправленные изменения"))
		b.WriteString("\n")
	}

	b.WriteString("\nКомпоненты:\n")
	switch {
	case rec.IsLocal():
		b.WriteString("  запись ещё не отправлена на сервер\n")
	case m.loading:
		b.WriteString("  загрузка...\n")
	case m.componentsErr != nil:
		b.WriteString("  " + humanizeError(m.componentsErr) + "\n")
	case len(m.components) == 0:
		b.WriteString("  нет компонентов\n")
	default:
		for i, name := range m.components {
			cursor := "  "
			if i == m.compIdx {
				cursor = "> "
			}
			b.WriteString(cursor + name + "\n")
		}
	}

	if m.status != "" {
		b.WriteString("\n" + m.status + "\n")
	}

	return renderPage(
		fitText(rec.Name, 48),
		b.String(),
		"e редакт.  d удалить  y копир.  a добавить компонент  x удалить компонент  esc назад",
	)
}
