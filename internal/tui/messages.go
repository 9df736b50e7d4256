package tui

import (
	"github.com/MKhiriev/go-registry-keeper/internal/telemetry"
	"github.com/MKhiriev/go-registry-keeper/models"
)

type snapshotMsg struct {
	snap models.ViewSnapshot
}

type viewClosedMsg struct{}

type listLoadedMsg struct {
	result    models.ListResult
	state     models.ConnectivityState
	parked    int
	parkedErr error
	err       error
}

type detailLoadedMsg struct {
	result        models.RecordResult
	components    []string
	componentsErr error
	err           error
}

type componentsChangedMsg struct {
	recordID   int64
	components []string
	err        error
}

type itemSavedMsg struct {
	result models.WriteResult
	err    error
}

type itemDeletedMsg struct {
	result models.WriteResult
	err    error
}

type syncDoneMsg struct {
	report     models.SweepReport
	summary    telemetry.Summary
	hasSummary bool
	err        error
}

type parkedLoadedMsg struct {
	set models.ParkedSet
	err error
}

type requeuedMsg struct {
	id  int64
	err error
}

type copiedMsg struct{}

type copyFailedMsg struct {
	err error
}

type clearStatusMsg struct{}
