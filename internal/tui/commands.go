package tui

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-registry-keeper/internal/telemetry"
	"github.com/MKhiriev/go-registry-keeper/models"
)

// waitForSnapshot delivers the next published view. A nil channel means the
// model runs without a subscription.
func waitForSnapshot(updates <-chan models.ViewSnapshot) tea.Cmd {
	if updates == nil {
		return nil
	}
	return func() tea.Msg {
		snap, ok := <-updates
		if !ok {
			return viewClosedMsg{}
		}
		return snapshotMsg{snap: snap}
	}
}

func (m appModel) cmdLoadList(filter models.RecordFilter) tea.Cmd {
	ctx := m.ctx
	registry := m.registry
	return func() tea.Msg {
		result, err := registry.List(ctx, filter)
		if err != nil {
			return listLoadedMsg{err: err}
		}
		set, parkedErr := registry.Parked(ctx)
		return listLoadedMsg{
			result:    result,
			state:     registry.State(),
			parked:    len(set.Records) + len(set.Deletions),
			parkedErr: parkedErr,
		}
	}
}

func (m appModel) cmdLoadDetail(id int64) tea.Cmd {
	ctx := m.ctx
	registry := m.registry
	return func() tea.Msg {
		result, err := registry.Get(ctx, id)
		if err != nil {
			return detailLoadedMsg{err: err}
		}
		if result.Record.IsLocal() {
			return detailLoadedMsg{result: result}
		}
		components, compErr := registry.ListComponents(ctx, id)
		return detailLoadedMsg{result: result, components: components, componentsErr: compErr}
	}
}

func (m appModel) cmdCreateItem(rec models.Record) tea.Cmd {
	ctx := m.ctx
	registry := m.registry
	return func() tea.Msg {
		result, err := registry.Create(ctx, rec)
		return itemSavedMsg{result: result, err: err}
	}
}

func (m appModel) cmdUpdateItem(rec models.Record) tea.Cmd {
	ctx := m.ctx
	registry := m.registry
	return func() tea.Msg {
		result, err := registry.Update(ctx, rec)
		return itemSavedMsg{result: result, err: err}
	}
}

func (m appModel) cmdDeleteItem(id int64) tea.Cmd {
	ctx := m.ctx
	registry := m.registry
	return func() tea.Msg {
		result, err := registry.Delete(ctx, id)
		return itemDeletedMsg{result: result, err: err}
	}
}

func (m appModel) cmdAddComponent(recordID int64, name string) tea.Cmd {
	ctx := m.ctx
	registry := m.registry
	return func() tea.Msg {
		if err := registry.AddComponent(ctx, recordID, name); err != nil {
			return componentsChangedMsg{recordID: recordID, err: err}
		}
		components, err := registry.ListComponents(ctx, recordID)
		return componentsChangedMsg{recordID: recordID, components: components, err: err}
	}
}

func (m appModel) cmdRemoveComponent(recordID int64, name string) tea.Cmd {
	ctx := m.ctx
	registry := m.registry
	return func() tea.Msg {
		if err := registry.RemoveComponent(ctx, recordID, name); err != nil {
			return componentsChangedMsg{recordID: recordID, err: err}
		}
		components, err := registry.ListComponents(ctx, recordID)
		return componentsChangedMsg{recordID: recordID, components: components, err: err}
	}
}

func (m appModel) cmdSync() tea.Cmd {
	ctx := m.ctx
	registry := m.registry
	reader := m.reader
	return func() tea.Msg {
		report, err := registry.Sweep(ctx)
		msg := syncDoneMsg{report: report, err: err}
		if reader == nil {
			return msg
		}
		if summary, sumErr := telemetry.Collect(ctx, reader); sumErr == nil {
			msg.summary = summary
			msg.hasSummary = true
		}
		return msg
	}
}

func (m appModel) cmdLoadParked() tea.Cmd {
	ctx := m.ctx
	registry := m.registry
	return func() tea.Msg {
		set, err := registry.Parked(ctx)
		return parkedLoadedMsg{set: set, err: err}
	}
}

func (m appModel) cmdRequeue(id int64) tea.Cmd {
	ctx := m.ctx
	registry := m.registry
	return func() tea.Msg {
		return requeuedMsg{id: id, err: registry.Requeue(ctx, id)}
	}
}

func cmdCopyRecord(rec models.Record) tea.Cmd {
	return func() tea.Msg {
		text, err := recordJSON(rec)
		if err != nil {
			return copyFailedMsg{err: err}
		}
		if err = clipboard.WriteAll(text); err != nil {
			return copyFailedMsg{err: fmt.Errorf("copy to clipboard: %w", err)}
		}
		return copiedMsg{}
	}
}

func recordJSON(rec models.Record) (string, error) {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode record: %w", err)
	}
	return string(data), nil
}

func cmdClearStatus() tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}
