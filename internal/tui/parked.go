package tui

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/MKhiriev/go-registry-keeper/models"
)

// parkedItem is one line of the parked list: a staged record or a tombstone.
type parkedItem struct {
	id        int64
	name      string
	deletion  bool
	attempts  int
	lastError string
}

type parkedModel struct {
	items   []parkedItem
	idx     int
	loading bool
	status  string
}

func newParkedItems(set models.ParkedSet) []parkedItem {
	items := make([]parkedItem, 0, len(set.Records)+len(set.Deletions))
	for _, r := range set.Records {
		items = append(items, parkedItem{
			id:        r.ID,
			name:      r.Name,
			attempts:  r.Attempts,
			lastError: r.LastError,
		})
	}
	for _, d := range set.Deletions {
		items = append(items, parkedItem{
			id:        d.ID,
			deletion:  true,
			attempts:  d.Attempts,
			lastError: d.LastError,
		})
	}
	slices.SortFunc(items, func(a, b parkedItem) int {
		return cmp.Compare(a.id, b.id)
	})
	return items
}

func (m parkedModel) current() (parkedItem, bool) {
	if m.idx < 0 || m.idx >= len(m.items) {
		return parkedItem{}, false
	}
	return m.items[m.idx], true
}

func (m *parkedModel) setItems(items []parkedItem) {
	m.items = items
	m.loading = false
	if m.idx >= len(m.items) {
		m.idx = len(m.items) - 1
	}
	if m.idx < 0 {
		m.idx = 0
	}
}

func (m parkedModel) View() string {
	var b strings.Builder

	switch {
	case m.loading:
		b.WriteString("Загрузка...\n")
	case len(m.items) == 0:
		b.WriteString("Нет отложенных изменений\n")
	default:
		for i, item := range m.items {
			cursor := "  "
			if i == m.idx {
				cursor = "> "
			}
			what := "изменение " + fitText(item.name, 30)
			if item.deletion {
				what = "удаление"
			}
			fmt.Fprintf(&b, "%s%6d  %-42s попыток: %d\n", cursor, item.id, what, item.attempts)
			if item.lastError != "" {
				b.WriteString("          " + helpStyle.Render(fitText(item.lastError, 60)) + "\n")
			}
		}
	}

	if m.status != "" {
		b.WriteString("\n" + m.status + "\n")
	}

	return renderPage("ОТЛОЖЕННЫЕ ИЗМЕНЕНИЯ", b.String(), "r вернуть в очередь  esc назад")
}
