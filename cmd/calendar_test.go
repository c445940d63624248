package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/chris-regnier/moodctl/internal/datemath"
	"github.com/chris-regnier/moodctl/internal/storage"
	"github.com/chris-regnier/moodctl/internal/ui"
)

func TestCalendarPrintsMonth(t *testing.T) {
	setupTestEnv(t)
	for _, mood := range []string{"😊", "😢", "🙂", "😐"} {
		seedEntry(t, "2025-09-17", mood, "x")
	}
	seedEntry(t, "2025-09-01", "😄", "x")
	seedEntry(t, "2025-10-01", "😡", "next month")

	var buf bytes.Buffer
	if err := calendarRun(&buf, 9, 2025); err != nil {
		t.Fatalf("calendarRun: %v", err)
	}
	out := stripANSI(buf.String())
	if !strings.Contains(out, "September 2025") {
		t.Errorf("missing title:\n%s", out)
	}
	if !strings.Contains(out, "+1") || !strings.Contains(out, "😄") {
		t.Errorf("missing capped moods:\n%s", out)
	}
	if strings.Contains(out, "😡") {
		t.Errorf("October entry leaked into September:\n%s", out)
	}
}

func TestCalendarJSON(t *testing.T) {
	setupTestEnv(t)
	jsonOutput = true
	seedEntry(t, "2025-09-17", "😊", "x")

	var buf bytes.Buffer
	if err := calendarRun(&buf, 9, 2025); err != nil {
		t.Fatal(err)
	}
	var m ui.MonthJSON
	if err := json.Unmarshal(buf.Bytes(), &m); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if m.Month != 9 || len(m.Days) != 30 || len(m.Days[16].Moods) != 1 {
		t.Errorf("month = %+v", m)
	}
}

func TestCalendarWeekStartFromConfig(t *testing.T) {
	setupTestEnv(t)
	appConfig.Calendar.WeekStart = "monday"

	var buf bytes.Buffer
	if err := calendarRun(&buf, 9, 2025); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(stripANSI(buf.String()), "\n")
	if len(lines) < 2 || !strings.HasPrefix(lines[1], "Mo") {
		t.Errorf("expected Monday-first header:\n%s", buf.String())
	}
}

func TestCalendarInvalidMonth(t *testing.T) {
	setupTestEnv(t)
	err := calendarRun(&bytes.Buffer{}, 13, 2025)
	if !errors.Is(err, datemath.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
	if ExitCode(err) != ExitUser {
		t.Errorf("exit code = %d", ExitCode(err))
	}

	if _, _, err := parseMonth("2025-13"); !errors.Is(err, storage.ErrValidation) {
		t.Errorf("parseMonth: %v", err)
	}
}
