package version

import (
	"strings"
	"testing"
)

func TestBuildIDFor(t *testing.T) {
	tests := []struct {
		name      string
		date      string
		expected  int
		wantError bool
	}{
		{name: "epoch date", date: "2024-11-01", expected: 0},
		{name: "next day after epoch", date: "2024-11-02", expected: 1},
		{name: "one year later", date: "2025-11-01", expected: 365},
		{name: "across leap day", date: "2028-11-01", expected: 1461},
		{name: "invalid format", date: "invalid", wantError: true},
		{name: "empty date", date: "", wantError: true},
		{name: "before epoch", date: "2024-10-31", wantError: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := buildIDFor(tt.date)

			if tt.wantError {
				if err == nil {
					t.Fatalf("expected error, got nil (id=%d)", got)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got != tt.expected {
				t.Errorf("buildIDFor(%q) = %d, want %d", tt.date, got, tt.expected)
			}
		})
	}
}

func TestString(t *testing.T) {
	old := BuildDate
	defer func() { BuildDate = old }()

	BuildDate = ""
	if got := String(); !strings.HasPrefix(got, "pits build unknown") {
		t.Errorf("String() = %q", got)
	}

	BuildDate = "2024-11-11"
	got := String()
	if !strings.Contains(got, "build 10 (2024-11-11)") || !strings.Contains(got, "ci[local]") {
		t.Errorf("String() = %q", got)
	}
	if info := Info(); !info.Calculated || info.Project != Project {
		t.Errorf("Info() = %+v", info)
	}
}
