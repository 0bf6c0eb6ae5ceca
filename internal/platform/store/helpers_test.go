package store

import (
	"context"
	"errors"
	"testing"

	perr "wildwatch/internal/platform/errors"

	"github.com/jackc/pgx/v5"
)

func scanName(r Row) (string, error) {
	var s string
	err := r.Scan(&s)
	return s, err
}

func TestExecOne(t *testing.T) {
	ctx := context.Background()
	if err := ExecOne(ctx, &fakeQuerier{tag: fakeTag{1}}, "update"); err != nil {
		t.Fatalf("one row: %v", err)
	}
	if err := ExecOne(ctx, &fakeQuerier{tag: fakeTag{0}}, "update"); !errors.Is(err, ErrNoRowsAffected) {
		t.Fatalf("zero rows: %v", err)
	}
	if err := ExecOne(ctx, &fakeQuerier{tag: fakeTag{3}}, "update"); err == nil {
		t.Fatalf("three rows should fail")
	}
	boom := errors.New("boom")
	if err := ExecOne(ctx, &fakeQuerier{execErr: boom}, "update"); !errors.Is(err, boom) {
		t.Fatalf("exec error lost: %v", err)
	}
}

func TestScalar(t *testing.T) {
	q := &fakeQuerier{rows: &fakeRows{data: [][]any{{int64(42)}}}}
	n, err := Scalar[int64](context.Background(), q, "select count(*) from detections")
	if err != nil || n != 42 {
		t.Fatalf("Scalar = %d, %v", n, err)
	}
}

func TestOne(t *testing.T) {
	ctx := context.Background()
	got, err := One(ctx, &fakeQuerier{rows: &fakeRows{data: [][]any{{"fox"}}}}, scanName, "q")
	if err != nil || got != "fox" {
		t.Fatalf("One = %q, %v", got, err)
	}
	if _, err := One(ctx, &fakeQuerier{rows: &fakeRows{}}, scanName, "q"); !errors.Is(err, perr.ErrNotFound) {
		t.Fatalf("empty result should be ErrNotFound, got %v", err)
	}
	if _, err := One(ctx, &fakeQuerier{rows: &fakeRows{data: [][]any{{"a"}, {"b"}}}}, scanName, "q"); err == nil {
		t.Fatalf("two rows should fail")
	}
}

func TestMany(t *testing.T) {
	ctx := context.Background()
	got, err := Many(ctx, &fakeQuerier{rows: &fakeRows{data: [][]any{{"fox"}, {"owl"}}}}, scanName, "q")
	if err != nil || len(got) != 2 || got[1] != "owl" {
		t.Fatalf("Many = %v, %v", got, err)
	}
	empty, err := Many(ctx, &fakeQuerier{rows: &fakeRows{}}, scanName, "q")
	if err != nil || empty == nil || len(empty) != 0 {
		t.Fatalf("empty Many should be a non-nil empty slice: %#v", empty)
	}
	rowsErr := errors.New("iter")
	if _, err := Many(ctx, &fakeQuerier{rows: &fakeRows{err: rowsErr}}, scanName, "q"); !errors.Is(err, rowsErr) {
		t.Fatalf("rows.Err lost: %v", err)
	}
}

func TestIsNoRows(t *testing.T) {
	if !IsNoRows(pgx.ErrNoRows) || !IsNoRows(perr.ErrNotFound) || IsNoRows(errors.New("x")) {
		t.Fatalf("IsNoRows misclassified")
	}
}
