package store

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-registry-keeper/models"
)

const (
	recordsTable    = "records"
	componentsTable = "record_components"
)

var recordColumns = []string{"id", "name", "kind", "status", "year", "location"}

const recordReturning = "RETURNING id, name, kind, status, year, location"

func buildListRecordsQuery(b sq.StatementBuilderType, filter models.RecordFilter) (string, []any, error) {
	q := b.Select(recordColumns...).From(recordsTable)

	where := sq.Eq{}
	if filter.Kind != "" {
		where["kind"] = filter.Kind
	}
	if filter.Status != "" {
		where["status"] = filter.Status
	}
	if len(where) > 0 {
		q = q.Where(where)
	}

	return q.OrderBy("id").ToSql()
}

func buildGetRecordQuery(b sq.StatementBuilderType, where sq.Eq) (string, []any, error) {
	return b.Select(recordColumns...).From(recordsTable).Where(where).ToSql()
}

// buildCreateRecordQuery inserts a record. With a key, a repeated key
// inserts nothing and returns no row.
func buildCreateRecordQuery(b sq.StatementBuilderType, rec models.Record, idempotencyKey string) (string, []any, error) {
	var key any
	if idempotencyKey != "" {
		key = idempotencyKey
	}

	q := b.Insert(recordsTable).
		Columns("name", "kind", "status", "year", "location", "idempotency_key").
		Values(rec.Name, rec.Kind, rec.Status, rec.Year, rec.Location, key)
	if idempotencyKey != "" {
		q = q.Suffix("ON CONFLICT (idempotency_key) DO NOTHING " + recordReturning)
	} else {
		q = q.Suffix(recordReturning)
	}

	return q.ToSql()
}

func buildUpdateRecordQuery(b sq.StatementBuilderType, rec models.Record) (string, []any, error) {
	return b.Update(recordsTable).
		Set("name", rec.Name).
		Set("kind", rec.Kind).
		Set("status", rec.Status).
		Set("year", rec.Year).
		Set("location", rec.Location).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": rec.ID}).
		Suffix(recordReturning).
		ToSql()
}

func buildDeleteRecordQuery(b sq.StatementBuilderType, id int64) (string, []any, error) {
	return b.Delete(recordsTable).Where(sq.Eq{"id": id}).ToSql()
}

func buildListComponentsQuery(b sq.StatementBuilderType, recordID int64) (string, []any, error) {
	return b.Select("name").
		From(componentsTable).
		Where(sq.Eq{"record_id": recordID}).
		OrderBy("name").
		ToSql()
}

func buildAddComponentQuery(b sq.StatementBuilderType, recordID int64, name string) (string, []any, error) {
	return b.Insert(componentsTable).
		Columns("record_id", "name").
		Values(recordID, name).
		ToSql()
}

func buildRemoveComponentQuery(b sq.StatementBuilderType, recordID int64, name string) (string, []any, error) {
	return b.Delete(componentsTable).
		Where(sq.Eq{"record_id": recordID, "name": name}).
		ToSql()
}
