package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/chris-regnier/moodctl/internal/shell"
)

func TestStatusDefault(t *testing.T) {
	setupTestEnv(t)
	seedEntry(t, "2025-09-15", "😐", "x")
	seedEntry(t, "2025-09-16", "😢", "x")
	seedEntry(t, "2025-09-17", "😊", "x")

	var buf bytes.Buffer
	if err := statusRun(&buf, statusOptions{}); err != nil {
		t.Fatalf("statusRun: %v", err)
	}
	if got := buf.String(); got != "✓ 3🔥 😊\n" {
		t.Errorf("status = %q", got)
	}
	if c := shell.ReadCache(appConfig.DataDir); c == nil || c.Streak != 3 {
		t.Errorf("cache not written: %+v", c)
	}
}

func TestStatusUsesCacheUntilInvalidated(t *testing.T) {
	setupTestEnv(t)
	seedEntry(t, "2025-09-16", "😢", "x")

	var buf bytes.Buffer
	if err := statusRun(&buf, statusOptions{}); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "✗ 1🔥\n" {
		t.Fatalf("status = %q", buf.String())
	}

	seedEntry(t, "2025-09-17", "😊", "x")
	buf.Reset()
	_ = statusRun(&buf, statusOptions{})
	if buf.String() != "✗ 1🔥\n" {
		t.Errorf("expected cached status, got %q", buf.String())
	}

	if err := invalidateCachePostRun(nil, nil); err != nil {
		t.Fatal(err)
	}
	buf.Reset()
	_ = statusRun(&buf, statusOptions{})
	if buf.String() != "✓ 2🔥 😊\n" {
		t.Errorf("after invalidation status = %q", buf.String())
	}
}

func TestStatusEnvAndFormat(t *testing.T) {
	setupTestEnv(t)
	seedEntry(t, "2025-09-17", "😊", "x")

	var buf bytes.Buffer
	if err := statusRun(&buf, statusOptions{env: true, shell: "bash"}); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`export MOODCTL_TODAY="✓"`, `export MOODCTL_STREAK="1"`, `export MOODCTL_MOODS="😊"`} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("env output missing %q:\n%s", want, buf.String())
		}
	}

	buf.Reset()
	if err := statusRun(&buf, statusOptions{format: "{{.Streak}}:{{.HasToday}}:{{.Backend}}"}); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "1:true:markdown\n" {
		t.Errorf("format output = %q", buf.String())
	}

	if err := statusRun(&bytes.Buffer{}, statusOptions{format: "{{.Nope"}); err == nil {
		t.Error("expected error for bad template")
	}
}
