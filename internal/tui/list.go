package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"

	"github.com/MKhiriev/go-registry-keeper/models"
)

type listModel struct {
	snap    models.ViewSnapshot
	filter  models.RecordFilter
	idx     int
	loading bool
	syncing bool
	spinner spinner.Model
	parked  int
	status  string
}

func newListModel() listModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	return listModel{
		snap:    models.ViewSnapshot{Pending: map[int64]bool{}},
		spinner: s,
		loading: true,
	}
}

func (m listModel) current() (models.Record, bool) {
	if len(m.snap.Records) == 0 || m.idx < 0 || m.idx >= len(m.snap.Records) {
		return models.Record{}, false
	}
	return m.snap.Records[m.idx], true
}

// apply shows snap and keeps the cursor on the same record when it is still
// listed.
func (m *listModel) apply(snap models.ViewSnapshot) {
	selected, hadSelection := m.current()

	m.snap = snap
	if m.snap.Pending == nil {
		m.snap.Pending = map[int64]bool{}
	}

	if hadSelection {
		for i, rec := range m.snap.Records {
			if rec.ID == selected.ID {
				m.idx = i
				return
			}
		}
	}
	m.clamp()
}

func (m *listModel) clamp() {
	if m.idx >= len(m.snap.Records) {
		m.idx = len(m.snap.Records) - 1
	}
	if m.idx < 0 {
		m.idx = 0
	}
}

func snapshotFromList(result models.ListResult, state models.ConnectivityState) models.ViewSnapshot {
	pending := make(map[int64]bool, len(result.Pending))
	for _, id := range result.Pending {
		pending[id] = true
	}
	return models.ViewSnapshot{
		Origin:  result.Origin,
		State:   state,
		Records: result.Records,
		Pending: pending,
	}
}

func pendingMarker(pending bool) string {
	if pending {
		return pendingStyle.Render("*")
	}
	return " "
}

func (m listModel) View() string {
	header := titleStyle.Render("Реестр объектов")
	if m.syncing {
		header += "  " + m.spinner.View()
	}
	out := header + "\n"
	out += statusBar(m.snap.State, m.snap.Origin, len(m.snap.Pending), m.parked) + "\n"
	if !m.filter.IsEmpty() {
		out += helpStyle.Render(filterLine(m.filter)) + "\n"
	}
	out += uiDivider + "\n"

	switch {
	case m.loading && len(m.snap.Records) == 0:
		out += "Загрузка...\n"
	case len(m.snap.Records) == 0:
		out += "Нет записей\n"
	default:
		for i, rec := range m.snap.Records {
			cursor := "  "
			if i == m.idx {
				cursor = "> "
			}
			out += fmt.Sprintf("%s%s %6d  %-30s %-12s %-12s %s\n",
				cursor,
				pendingMarker(m.snap.IsPending(rec.ID)),
				rec.ID,
				fitText(rec.Name, 30),
				fitText(rec.Kind, 12),
				fitText(rec.Status, 12),
				yearOrDash(rec.Year),
			)
		}
	}

	if m.status != "" {
		out += "\n" + m.status + "\n"
	}

	out += "\n" + helpStyle.Render(strings.TrimSpace(
		"enter открыть  n новая  e редакт.  d удалить  y копир.  s синхр.  r обновить  f фильтр  p отложенные  v версия  q выход",
	))
	return out
}

func statusBar(state models.ConnectivityState, origin models.Origin, pending, parked int) string {
	var b strings.Builder

	if state == models.Offline {
		b.WriteString(offlineStyle.Render("Offline"))
	} else {
		b.WriteString(onlineStyle.Render("Online"))
	}
	b.WriteString("  источник: ")
	b.WriteString(originName(origin))
	fmt.Fprintf(&b, "  не отправлено: %d", pending)
	if parked > 0 {
		b.WriteString("  ")
		b.WriteString(parkedStyle.Render(fmt.Sprintf("отложено: %d", parked)))
	} else {
		b.WriteString("  отложено: 0")
	}

	return b.String()
}

func filterLine(f models.RecordFilter) string {
	parts := make([]string, 0, 2)
	if f.Kind != "" {
		parts = append(parts, "тип="+f.Kind)
	}
	if f.Status != "" {
		parts = append(parts, "статус="+f.Status)
	}
	return "фильтр: " + strings.Join(parts, " ")
}

func originName(o models.Origin) string {
	switch o {
	case models.OriginRemote:
		return "сервер"
	case models.OriginLocalFallback:
		return "локальная копия"
	case models.OriginStagedLocal:
		return "сохранено локально"
	default:
		return "неизвестно"
	}
}
