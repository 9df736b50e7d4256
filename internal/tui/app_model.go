package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/MKhiriev/go-registry-keeper/internal/service"
	"github.com/MKhiriev/go-registry-keeper/models"
)

type screen int

const (
	screenList screen = iota
	screenDetail
	screenForm
	screenParked
	screenSync
)

type appModel struct {
	ctx       context.Context
	registry  service.RegistryService
	reader    sdkmetric.Reader
	buildInfo models.AppBuildInfo
	updates   <-chan models.ViewSnapshot

	currentScreen screen
	formReturn    screen

	list       listModel
	detail     detailModel
	form       formModel
	parked     parkedModel
	syncScreen syncModel

	showError     bool
	errorOverlay  errorOverlayModel
	showConfirm   bool
	confirm       confirmModel
	pendingDelete *int64
	showBuildInfo bool
}

func newAppModel(
	ctx context.Context,
	registry service.RegistryService,
	reader sdkmetric.Reader,
	buildInfo models.AppBuildInfo,
	updates <-chan models.ViewSnapshot,
) appModel {
	return appModel{
		ctx:           ctx,
		registry:      registry,
		reader:        reader,
		buildInfo:     buildInfo,
		updates:       updates,
		currentScreen: screenList,
		list:          newListModel(),
		syncScreen:    newSyncModel(),
	}
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(m.cmdLoadList(m.list.filter), waitForSnapshot(m.updates))
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.showBuildInfo {
			if key.Matches(msg, keys.esc) || key.Matches(msg, keys.buildInfo) {
				m.showBuildInfo = false
			}
			return m, nil
		}
		if m.showError {
			if key.Matches(msg, keys.enter) || key.Matches(msg, keys.esc) {
				m.showError = false
				m.errorOverlay.message = ""
			}
			return m, nil
		}
		if m.showConfirm {
			if key.Matches(msg, keys.yes) {
				m.showConfirm = false
				if m.pendingDelete == nil {
					return m, nil
				}
				id := *m.pendingDelete
				m.pendingDelete = nil
				return m, m.cmdDeleteItem(id)
			}
			if key.Matches(msg, keys.no) || key.Matches(msg, keys.esc) {
				m.showConfirm = false
				m.pendingDelete = nil
			}
			return m, nil
		}
	case snapshotMsg:
		m.list.apply(msg.snap)
		m.list.loading = false
		if m.currentScreen == screenDetail {
			m.detail.pending = msg.snap.IsPending(m.detail.record.ID)
		}
		return m, waitForSnapshot(m.updates)
	case viewClosedMsg:
		return m, nil
	case listLoadedMsg:
		m.list.loading = false
		if msg.err != nil {
			m.showErrorf(humanizeError(msg.err))
			return m, nil
		}
		m.list.apply(snapshotFromList(msg.result, msg.state))
		if msg.parkedErr == nil {
			m.list.parked = msg.parked
		}
		if msg.result.Drained > 0 {
			m.list.status = fmt.Sprintf("Отправлено на сервер: %d", msg.result.Drained)
			return m, cmdClearStatus()
		}
		return m, nil
	case detailLoadedMsg:
		m.detail.loading = false
		if msg.err != nil {
			m.detail.status = humanizeError(msg.err)
			return m, nil
		}
		m.detail.record = msg.result.Record
		m.detail.origin = msg.result.Origin
		if msg.componentsErr != nil {
			m.detail.componentsErr = msg.componentsErr
		} else {
			m.detail.setComponents(msg.components)
		}
		return m, nil
	case componentsChangedMsg:
		m.form.submitting = false
		if msg.err != nil {
			m.showErrorf(humanizeError(msg.err))
			return m, nil
		}
		if m.detail.record.ID == msg.recordID {
			m.detail.setComponents(msg.components)
		}
		if m.currentScreen == screenForm {
			m.currentScreen = screenDetail
		}
		return m, nil
	case itemSavedMsg:
		m.form.submitting = false
		if msg.err != nil {
			m.showErrorf(humanizeError(msg.err))
			return m, nil
		}
		m.list.status = savedStatus(msg.result.Origin)
		m.currentScreen = screenList
		return m, tea.Batch(m.cmdLoadList(m.list.filter), cmdClearStatus())
	case itemDeletedMsg:
		if msg.err != nil {
			m.showErrorf(humanizeError(msg.err))
			return m, nil
		}
		m.list.status = deletedStatus(msg.result.Origin)
		m.currentScreen = screenList
		return m, tea.Batch(m.cmdLoadList(m.list.filter), cmdClearStatus())
	case syncDoneMsg:
		m.list.syncing = false
		m.syncScreen.running = false
		m.syncScreen.err = msg.err
		m.syncScreen.report = msg.report
		if msg.hasSummary {
			m.syncScreen.summary = msg.summary
			m.syncScreen.hasSummary = true
		}
		return m, m.cmdLoadList(m.list.filter)
	case parkedLoadedMsg:
		m.parked.loading = false
		if msg.err != nil {
			m.parked.status = humanizeError(msg.err)
			return m, nil
		}
		items := newParkedItems(msg.set)
		m.parked.setItems(items)
		m.list.parked = len(items)
		return m, nil
	case requeuedMsg:
		if msg.err != nil {
			m.parked.status = humanizeError(msg.err)
			return m, nil
		}
		m.parked.status = fmt.Sprintf("Запись %d возвращена в очередь", msg.id)
		return m, tea.Batch(m.cmdLoadParked(), cmdClearStatus())
	case copiedMsg:
		m.detail.status = "Скопировано!"
		m.list.status = "Скопировано!"
		return m, cmdClearStatus()
	case copyFailedMsg:
		m.showErrorf(fmt.Sprintf("Не удалось скопировать: %v", msg.err))
		return m, nil
	case clearStatusMsg:
		m.detail.status = ""
		m.list.status = ""
		m.parked.status = ""
		return m, nil
	case tea.WindowSizeMsg:
		return m, nil
	}

	switch m.currentScreen {
	case screenList:
		return m.updateList(msg)
	case screenDetail:
		return m.updateDetail(msg)
	case screenForm:
		return m.updateForm(msg)
	case screenParked:
		return m.updateParked(msg)
	case screenSync:
		return m.updateSync(msg)
	}

	return m, nil
}

func (m appModel) View() string {
	if m.showBuildInfo {
		return appStyle.Render(renderBuildInfoWindow(m.buildInfo))
	}

	var body string
	switch m.currentScreen {
	case screenList:
		body = m.list.View()
	case screenDetail:
		body = m.detail.View()
	case screenForm:
		body = m.form.View()
	case screenParked:
		body = m.parked.View()
	case screenSync:
		body = m.syncScreen.View()
	}

	if m.showConfirm {
		body += "\n\n" + m.confirm.View()
	}
	if m.showError {
		body += "\n\n" + m.errorOverlay.View()
	}

	return appStyle.Render(body)
}

func (m *appModel) showErrorf(message string) {
	m.showError = true
	m.errorOverlay.message = message
}

func (m *appModel) askDelete(rec models.Record) {
	id := rec.ID
	m.showConfirm = true
	m.confirm = confirmModel{message: rec.Name, local: rec.IsLocal()}
	m.pendingDelete = &id
}

func (m *appModel) openForm(form formModel, back screen) {
	m.form = form
	m.formReturn = back
	m.currentScreen = screenForm
}

func (m appModel) startSync() (tea.Model, tea.Cmd) {
	if m.list.syncing {
		return m, nil
	}
	m.list.syncing = true
	m.syncScreen.running = true
	m.currentScreen = screenSync
	return m, tea.Batch(m.syncScreen.spinner.Tick, m.cmdSync())
}

func (m appModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.up):
			if m.list.idx > 0 {
				m.list.idx--
			}
		case key.Matches(msg, keys.down):
			if m.list.idx < len(m.list.snap.Records)-1 {
				m.list.idx++
			}
		case key.Matches(msg, keys.enter):
			rec, ok := m.list.current()
			if !ok {
				return m, nil
			}
			m.detail = newDetailModel(rec, m.list.snap.IsPending(rec.ID))
			m.currentScreen = screenDetail
			return m, m.cmdLoadDetail(rec.ID)
		case key.Matches(msg, keys.newItem):
			m.openForm(newRecordForm(nil), screenList)
		case key.Matches(msg, keys.edit):
			rec, ok := m.list.current()
			if !ok {
				return m, nil
			}
			m.openForm(newRecordForm(&rec), screenList)
		case key.Matches(msg, keys.delete):
			rec, ok := m.list.current()
			if !ok {
				return m, nil
			}
			m.askDelete(rec)
		case key.Matches(msg, keys.copy):
			rec, ok := m.list.current()
			if !ok {
				return m, nil
			}
			return m, cmdCopyRecord(rec)
		case key.Matches(msg, keys.sync):
			return m.startSync()
		case key.Matches(msg, keys.reload):
			m.list.loading = true
			return m, m.cmdLoadList(m.list.filter)
		case key.Matches(msg, keys.filter):
			m.openForm(newFilterForm(m.list.filter), screenList)
		case key.Matches(msg, keys.parked):
			m.parked = parkedModel{loading: true}
			m.currentScreen = screenParked
			return m, m.cmdLoadParked()
		case key.Matches(msg, keys.buildInfo):
			m.showBuildInfo = true
		case key.Matches(msg, keys.quit):
			return m, tea.Quit
		}
	case spinner.TickMsg:
		if m.list.syncing {
			var cmd tea.Cmd
			m.list.spinner, cmd = m.list.spinner.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

func (m appModel) updateDetail(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	rec := m.detail.record
	switch {
	case key.Matches(keyMsg, keys.esc):
		m.currentScreen = screenList
	case key.Matches(keyMsg, keys.up):
		if m.detail.compIdx > 0 {
			m.detail.compIdx--
		}
	case key.Matches(keyMsg, keys.down):
		if m.detail.compIdx < len(m.detail.components)-1 {
			m.detail.compIdx++
		}
	case key.Matches(keyMsg, keys.edit):
		m.openForm(newRecordForm(&rec), screenDetail)
	case key.Matches(keyMsg, keys.delete):
		m.askDelete(rec)
	case key.Matches(keyMsg, keys.copy):
		return m, cmdCopyRecord(rec)
	case key.Matches(keyMsg, keys.addComp):
		if rec.IsLocal() {
			m.showErrorf(humanizeError(service.ErrRecordNotSynced))
			return m, nil
		}
		m.openForm(newComponentForm(rec.ID), screenDetail)
	case key.Matches(keyMsg, keys.removeComp):
		name, ok := m.detail.currentComponent()
		if !ok {
			return m, nil
		}
		return m, m.cmdRemoveComponent(rec.ID, name)
	}

	return m, nil
}

func (m appModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			m.currentScreen = m.formReturn
			return m, nil
		case key.Matches(keyMsg, keys.tab):
			m.form = m.form.focusNext()
			return m, nil
		case key.Matches(keyMsg, keys.backtab):
			m.form = m.form.focusPrev()
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			if m.form.submitting {
				return m, nil
			}
			return m.submitForm()
		}
	}

	var cmd tea.Cmd
	m.form.inputs[m.form.focus], cmd = m.form.inputs[m.form.focus].Update(msg)
	return m, cmd
}

func (m appModel) submitForm() (tea.Model, tea.Cmd) {
	switch m.form.kind {
	case formFilter:
		m.list.filter = m.form.toFilter()
		m.list.loading = true
		m.currentScreen = screenList
		return m, m.cmdLoadList(m.list.filter)
	case formComponent:
		name, err := m.form.componentName()
		if err != nil {
			m.showErrorf(err.Error())
			return m, nil
		}
		m.form.submitting = true
		return m, m.cmdAddComponent(m.form.recordID, name)
	}

	rec, err := m.form.toRecord()
	if err != nil {
		m.showErrorf(err.Error())
		return m, nil
	}
	m.form.submitting = true
	if m.form.editing {
		return m, m.cmdUpdateItem(rec)
	}
	return m, m.cmdCreateItem(rec)
}

func (m appModel) updateParked(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.esc):
		m.currentScreen = screenList
	case key.Matches(keyMsg, keys.up):
		if m.parked.idx > 0 {
			m.parked.idx--
		}
	case key.Matches(keyMsg, keys.down):
		if m.parked.idx < len(m.parked.items)-1 {
			m.parked.idx++
		}
	case key.Matches(keyMsg, keys.requeue):
		item, ok := m.parked.current()
		if !ok {
			return m, nil
		}
		return m, m.cmdRequeue(item.id)
	}

	return m, nil
}

func (m appModel) updateSync(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if m.syncScreen.running {
			return m, nil
		}
		switch {
		case key.Matches(keyMsg, keys.esc):
			m.currentScreen = screenList
		case key.Matches(keyMsg, keys.sync):
			return m.startSync()
		}
		return m, nil
	}

	if !m.syncScreen.running {
		return m, nil
	}
	var cmd tea.Cmd
	m.syncScreen.spinner, cmd = m.syncScreen.spinner.Update(msg)
	return m, cmd
}

func savedStatus(origin models.Origin) string {
	if origin == models.OriginStagedLocal {
		return "Сохранено локально, будет отправлено при подключении"
	}
	return "Сохранено"
}

func deletedStatus(origin models.Origin) string {
	if origin == models.OriginStagedLocal {
		return "Удалено локально, будет отправлено при подключении"
	}
	return "Удалено"
}
