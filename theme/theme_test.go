package theme

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultValidates(t *testing.T) {
	th := Default()
	if err := th.Validate(); err != nil {
		t.Fatalf("default theme invalid: %v", err)
	}
}

func TestColumnWidth(t *testing.T) {
	th := Default()
	got := th.Page.ColumnWidth()
	want := (480.0 - 28 - 32 - 20) / 2
	if got != want {
		t.Fatalf("column width = %g, want %g", got, want)
	}
	if got <= 0 {
		t.Fatalf("column width must be positive, got %g", got)
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "theme.yaml")
	overlay := "page:\n  column_gap: 12\nquiz:\n  row_height: 18\n"
	if err := os.WriteFile(path, []byte(overlay), 0o644); err != nil {
		t.Fatal(err)
	}
	th, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if th.Page.ColumnGap != 12 {
		t.Fatalf("column gap = %g, want 12", th.Page.ColumnGap)
	}
	if th.Quiz.RowHeight != 18 {
		t.Fatalf("quiz row height = %g, want 18", th.Quiz.RowHeight)
	}
	// untouched fields keep their defaults
	if th.Page.Width != 480 {
		t.Fatalf("page width = %g, want 480", th.Page.Width)
	}
}

func TestLoadRejectsBadGeometry(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "theme.yaml")
	overlay := "page:\n  margin_left: 300\n  margin_right: 300\n"
	if err := os.WriteFile(path, []byte(overlay), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for zero column width")
	}
}

func TestLineSpacing(t *testing.T) {
	if got := LineSpacing(7); got != 7 {
		t.Fatalf("spacing at 7pt = %g, want 7", got)
	}
	if got := LineSpacing(10); got != 11 {
		t.Fatalf("spacing at 10pt = %g, want 11", got)
	}
}
