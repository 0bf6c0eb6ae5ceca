package pg

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestVerbAndCompact(t *testing.T) {
	cases := map[string]string{
		"SELECT count(*) FROM detections":  "select",
		"\n  insert into users (id) values": "insert",
		"WITH m AS (select 1) select *":     "with",
		"":                                  "",
	}
	for in, want := range cases {
		if got := Verb(in); got != want {
			t.Fatalf("Verb(%q) = %q, want %q", in, got, want)
		}
	}
	if got := compact("select\n\t*  from\n detections"); got != "select * from detections" {
		t.Fatalf("compact = %q", got)
	}
}

func TestTracerLevels(t *testing.T) {
	var buf bytes.Buffer
	root := zerolog.New(&buf)

	quiet := Tracer(root, false)
	quiet.OnQuery(context.Background(), QueryEvent{SQL: "select 1"})
	if buf.Len() != 0 {
		t.Fatalf("fast query should not log when not verbose: %s", buf.String())
	}

	quiet.OnQuery(context.Background(), QueryEvent{SQL: "select 1", Slow: true, ElapsedUS: 900000})
	if !strings.Contains(buf.String(), `"level":"warn"`) {
		t.Fatalf("slow query should warn: %s", buf.String())
	}

	buf.Reset()
	quiet.OnQuery(context.Background(), QueryEvent{SQL: "insert into detections", Err: errors.New("dup")})
	if !strings.Contains(buf.String(), `"level":"error"`) || !strings.Contains(buf.String(), "dup") {
		t.Fatalf("failed query should error: %s", buf.String())
	}

	buf.Reset()
	Tracer(root, true).OnQuery(context.Background(), QueryEvent{SQL: "select\n 1", Args: []any{1, 2}})
	out := buf.String()
	if !strings.Contains(out, `"sql":"select 1"`) || !strings.Contains(out, `"args":2`) {
		t.Fatalf("verbose trace missing fields: %s", out)
	}
}
