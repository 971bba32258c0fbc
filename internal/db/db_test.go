package db

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// recorder captures the statements sent to it.
type recorder struct {
	sql  []string
	args [][]any
	err  error
}

func (r *recorder) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	r.sql = append(r.sql, sql)
	r.args = append(r.args, args)
	return pgconn.CommandTag{}, r.err
}

func (r *recorder) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	r.sql = append(r.sql, sql)
	r.args = append(r.args, args)
	return nil, errors.New("not implemented")
}

func (r *recorder) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	r.sql = append(r.sql, sql)
	r.args = append(r.args, args)
	return errRow{err: pgx.ErrNoRows}
}

type errRow struct{ err error }

func (e errRow) Scan(...any) error { return e.err }

func TestSchema(t *testing.T) {
	for _, table := range []string{"users", "designs", "design_versions", "assets"} {
		if !strings.Contains(Schema(), "CREATE TABLE IF NOT EXISTS "+table+" (") {
			t.Errorf("schema missing table %s", table)
		}
	}
}

func TestMigrate(t *testing.T) {
	rec := &recorder{}
	if err := Migrate(context.Background(), rec); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	if len(rec.sql) != 1 || rec.sql[0] != Schema() {
		t.Errorf("Migrate ran %d statements", len(rec.sql))
	}

	rec = &recorder{err: errors.New("boom")}
	if err := Migrate(context.Background(), rec); err == nil || !strings.Contains(err.Error(), "apply schema") {
		t.Errorf("err = %v, want wrapped apply schema error", err)
	}
}

func TestCreateDesignVersion(t *testing.T) {
	rec := &recorder{}
	q := New(rec)

	_, err := q.CreateDesignVersion(context.Background(), CreateDesignVersionParams{
		ID:        "ver_1",
		DesignID:  "design_1",
		Panel:     []byte(`{}`),
		CreatedBy: "user_1",
	})
	if !errors.Is(err, pgx.ErrNoRows) {
		t.Errorf("err = %v, want the row error", err)
	}
	if len(rec.args) != 1 || len(rec.args[0]) != 4 || rec.args[0][1] != "design_1" {
		t.Errorf("args = %v", rec.args)
	}
	if !strings.Contains(rec.sql[0], "MAX(version)") {
		t.Errorf("version is not derived from the latest row: %s", rec.sql[0])
	}
}

func TestGetDesign_NoRows(t *testing.T) {
	q := New(&recorder{})
	if _, err := q.GetDesign(context.Background(), "design_x"); !errors.Is(err, pgx.ErrNoRows) {
		t.Errorf("err = %v, want ErrNoRows", err)
	}
}
