package logtail

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestRead(t *testing.T) {
	// Create a temporary log file
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "test.log")

	// Write 10 lines of content
	var content strings.Builder
	var expectedAll []string
	for i := 1; i <= 10; i++ {
		line := fmt.Sprintf("Line %d", i)
		content.WriteString(line + "\n")
		expectedAll = append(expectedAll, line)
	}

	if err := os.WriteFile(logPath, []byte(content.String()), 0644); err != nil {
		t.Fatalf("failed to create test log file: %v", err)
	}

	tests := []struct {
		name     string
		maxLines int
		expected []string
	}{
		{
			name:     "read all (0)",
			maxLines: 0,
			expected: expectedAll,
		},
		{
			name:     "read all (negative)",
			maxLines: -1,
			expected: expectedAll,
		},
		{
			name:     "read partial (5)",
			maxLines: 5,
			expected: expectedAll[5:],
		},
		{
			name:     "read exactly all (10)",
			maxLines: 10,
			expected: expectedAll,
		},
		{
			name:     "read more than exists (20)",
			maxLines: 20,
			expected: expectedAll,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(logPath, tt.maxLines)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Read() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestReadMissingFile(t *testing.T) {
	got, err := Read(filepath.Join(t.TempDir(), "missing.log"), 10)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if got != nil {
		t.Fatalf("Read() = %v, want nil", got)
	}
}

func TestParse(t *testing.T) {
	line := `time=2026-03-01T10:00:00.000Z level=WARN msg="api call failed" component=api op="generate reply" status=500 error="boom: \"x\""`
	e := Parse(line)
	if !e.Parsed {
		t.Fatalf("Parsed = false, want true")
	}
	if e.Level != slog.LevelWarn {
		t.Fatalf("Level = %v, want WARN", e.Level)
	}
	if e.Message != "api call failed" {
		t.Fatalf("Message = %q, want %q", e.Message, "api call failed")
	}
	if want := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC); !e.Time.Equal(want) {
		t.Fatalf("Time = %v, want %v", e.Time, want)
	}
	if got := e.Attr("op"); got != "generate reply" {
		t.Fatalf("Attr(op) = %q, want %q", got, "generate reply")
	}
	if got := e.Attr("error"); got != `boom: "x"` {
		t.Fatalf("Attr(error) = %q, want %q", got, `boom: "x"`)
	}
	if got := e.Attr("missing"); got != "" {
		t.Fatalf("Attr(missing) = %q, want empty", got)
	}
}

func TestParseUnstructuredLine(t *testing.T) {
	e := Parse("panic: something went wrong")
	if e.Parsed {
		t.Fatalf("Parsed = true, want false")
	}
	if e.Raw != "panic: something went wrong" {
		t.Fatalf("Raw = %q", e.Raw)
	}
}

func TestFilter(t *testing.T) {
	lines := []string{
		`time=2026-03-01T10:00:00Z level=DEBUG msg=request component=api`,
		`time=2026-03-01T10:00:01Z level=INFO msg="Scan started"`,
		"",
		`goroutine 1 [running]:`,
		`time=2026-03-01T10:00:02Z level=ERROR msg="Failed to scan leads"`,
	}
	got := Filter(lines, slog.LevelInfo)
	var msgs []string
	for _, e := range got {
		if e.Parsed {
			msgs = append(msgs, e.Message)
		} else {
			msgs = append(msgs, e.Raw)
		}
	}
	want := []string{"Scan started", "goroutine 1 [running]:", "Failed to scan leads"}
	if !reflect.DeepEqual(msgs, want) {
		t.Fatalf("Filter() = %v, want %v", msgs, want)
	}
}
