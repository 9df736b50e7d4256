package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/MKhiriev/go-registry-keeper/models"
)

type formKind int

const (
	formRecord formKind = iota
	formFilter
	formComponent
)

// Record form field order.
const (
	fieldName = iota
	fieldKind
	fieldStatus
	fieldYear
	fieldLocation
)

type formModel struct {
	kind       formKind
	labels     []string
	inputs     []textinput.Model
	focus      int
	editing    bool
	recordID   int64
	submitting bool
}

func newInputs(n int) []textinput.Model {
	inputs := make([]textinput.Model, n)
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].Width = 50
	}
	inputs[0].Focus()
	return inputs
}

func newRecordForm(rec *models.Record) formModel {
	m := formModel{
		kind:   formRecord,
		labels: []string{"Название", "Тип", "Статус", "Год", "Расположение"},
		inputs: newInputs(5),
	}
	m.inputs[fieldName].CharLimit = 255
	m.inputs[fieldKind].CharLimit = 64
	m.inputs[fieldStatus].CharLimit = 64
	m.inputs[fieldYear].CharLimit = 4

	if rec == nil {
		return m
	}

	m.editing = true
	m.recordID = rec.ID
	m.inputs[fieldName].SetValue(rec.Name)
	m.inputs[fieldKind].SetValue(rec.Kind)
	m.inputs[fieldStatus].SetValue(rec.Status)
	if rec.Year != 0 {
		m.inputs[fieldYear].SetValue(strconv.Itoa(rec.Year))
	}
	m.inputs[fieldLocation].SetValue(rec.Location)
	return m
}

func newFilterForm(f models.RecordFilter) formModel {
	m := formModel{
		kind:   formFilter,
		labels: []string{"Тип", "Статус"},
		inputs: newInputs(2),
	}
	m.inputs[0].SetValue(f.Kind)
	m.inputs[1].SetValue(f.Status)
	return m
}

func newComponentForm(recordID int64) formModel {
	return formModel{
		kind:     formComponent,
		labels:   []string{"Компонент"},
		inputs:   newInputs(1),
		recordID: recordID,
	}
}

// toRecord reads the record form. Only the checks needed to build a record
// are done here; the registry validates the rest.
func (m formModel) toRecord() (models.Record, error) {
	name := strings.TrimSpace(m.inputs[fieldName].Value())
	if name == "" {
		return models.Record{}, errNameRequired
	}

	var year int
	if raw := strings.TrimSpace(m.inputs[fieldYear].Value()); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil {
			return models.Record{}, fmt.Errorf("%w: %q", errInvalidYear, raw)
		}
		year = y
	}

	return models.Record{
		ID:       m.recordID,
		Name:     name,
		Kind:     strings.TrimSpace(m.inputs[fieldKind].Value()),
		Status:   strings.TrimSpace(m.inputs[fieldStatus].Value()),
		Year:     year,
		Location: strings.TrimSpace(m.inputs[fieldLocation].Value()),
	}, nil
}

func (m formModel) toFilter() models.RecordFilter {
	return models.RecordFilter{
		Kind:   strings.TrimSpace(m.inputs[0].Value()),
		Status: strings.TrimSpace(m.inputs[1].Value()),
	}
}

func (m formModel) componentName() (string, error) {
	name := strings.TrimSpace(m.inputs[0].Value())
	if name == "" {
		return "", errNoComponent
	}
	return name, nil
}

func (m formModel) focusNext() formModel {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + 1) % len(m.inputs)
	m.inputs[m.focus].Focus()
	return m
}

func (m formModel) focusPrev() formModel {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus - 1 + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
	return m
}

func (m formModel) title() string {
	switch m.kind {
	case formFilter:
		return "Фильтр"
	case formComponent:
		return "Новый компонент"
	}
	if m.editing {
		return "Редактирование: " + m.inputs[fieldName].Value()
	}
	return "Новая запись"
}

func (m formModel) View() string {
	var b strings.Builder
	for i, input := range m.inputs {
		fmt.Fprintf(&b, "%-14s [%s]\n", m.labels[i]+":", input.View())
	}
	if m.submitting {
		b.WriteString("\nСохранение...\n")
	}
	if m.kind == formRecord && m.editing && m.recordID < 0 {
		b.WriteString("\n" + pendingStyle.Render("Запись ещё не отправлена на сервер") + "\n")
	}

	return renderPage(m.title(), b.String(), "esc отмена  tab следующее поле  enter сохранить")
}
