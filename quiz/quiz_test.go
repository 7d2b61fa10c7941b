package quiz

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lvillar/bookletgen/layout"
	"github.com/lvillar/bookletgen/surface"
	"github.com/lvillar/bookletgen/theme"
)

func TestDeriveTruth(t *testing.T) {
	cases := []struct {
		in     string
		isTrue bool
		ok     bool
	}{
		{"si deve dare la precedenza V", true, true},
		{"si puo svoltare F", false, true},
		{"V", true, true},
		{"no marker here", false, false},
		{"ends in other letter X", false, false},
	}
	for _, c := range cases {
		isTrue, ok := DeriveTruth(c.in)
		if isTrue != c.isTrue || ok != c.ok {
			t.Fatalf("DeriveTruth(%q) = %v,%v want %v,%v", c.in, isTrue, ok, c.isTrue, c.ok)
		}
	}
	if got := StripTruth("si deve dare la precedenza V"); got != "si deve dare la precedenza" {
		t.Fatalf("StripTruth = %q", got)
	}
}

func TestApplyFilter(t *testing.T) {
	items := []Item{
		{Text: "a", IsTrue: true},
		{Text: "b", IsTrue: false},
		{Text: "c", IsTrue: true},
	}
	if got := Apply(items, FilterAll); len(got) != 3 {
		t.Fatalf("all: %d items", len(got))
	}
	got := Apply(items, FilterTrue)
	if len(got) != 2 || got[0].Text != "a" || got[1].Text != "c" {
		t.Fatalf("true filter: %+v", got)
	}
	got = Apply(items, FilterFalse)
	if len(got) != 1 || got[0].Text != "b" {
		t.Fatalf("false filter: %+v", got)
	}
}

func TestParseFilter(t *testing.T) {
	if f, err := ParseFilter("true_only"); err != nil || f != FilterTrue {
		t.Fatalf("true_only: %v %v", f, err)
	}
	if _, err := ParseFilter("maybe"); err == nil {
		t.Fatal("expected error for unknown filter")
	}
}

func newTable() (*Table, *layout.Cursor, *surface.Headless) {
	th := theme.Default()
	s := surface.NewHeadless(th.Page.Width, th.Page.Height)
	c := layout.NewCursor(s, th.Page)
	c.Ensure()
	return NewTable(s, th.Quiz), c, s
}

func TestRowHeightBands(t *testing.T) {
	tab, _, _ := newTable()
	width := 420.0
	short := tab.RowHeight("breve", width)
	if short != 16 {
		t.Fatalf("short row = %g, want 16", short)
	}
	// charsPerLine = (420-42)/(8*0.42) = 112.5; 100 chars sits in the
	// stretched band (95.6 .. 135)
	medium := tab.RowHeight(strings.Repeat("x", 100), width)
	if medium != 16*1.3 {
		t.Fatalf("stretched row = %g, want %g", medium, 16*1.3)
	}
	long := tab.RowHeight(strings.Repeat("x", 300), width)
	if long <= medium {
		t.Fatalf("long row %g must exceed stretched %g", long, medium)
	}
}

func TestDrawNoOrphanRow(t *testing.T) {
	tab, c, s := newTable()
	// burn the page down to 20pt of space after the header would fit
	c.SetY(c.Geom.Height - c.Geom.MarginBottom - c.Geom.FooterReserve - tab.MinStartHeight())
	items := []Item{
		{Text: "a", IsTrue: true},
		{Text: "b", IsTrue: false},
		{Text: "c", IsTrue: true},
		{Text: "d", IsTrue: false},
	}
	// exactly min start height remains, so the header lands here and
	// leaves 2 rows of room
	tab.Draw(c, 28, 420, items)
	if s.PageCount() != 2 {
		t.Fatalf("pages = %d, want 2", s.PageCount())
	}
}

func TestDrawDefersAllWhenOneRowWouldOrphan(t *testing.T) {
	tab, c, s := newTable()
	items := []Item{
		{Text: "a", IsTrue: true},
		{Text: "b", IsTrue: false},
		{Text: "c", IsTrue: true},
		{Text: "d", IsTrue: false},
	}
	// header fits, then only 20pt remain: one 16pt row would fit but
	// must not be orphaned
	c.SetY(c.Geom.Height - c.Geom.MarginBottom - c.Geom.FooterReserve - tab.Th.HeaderHeight - 20)
	tab.Draw(c, 28, 420, items)
	if s.PageCount() != 2 {
		t.Fatalf("pages = %d, want 2", s.PageCount())
	}
	// no row rects on page 1 besides header and boxes: count full-width
	// row fills (420 wide, 16 tall)
	for _, r := range s.Page(1).Rects {
		if r.Rect.W == 420 && r.Rect.H == 16 {
			t.Fatal("a row was orphaned on page 1")
		}
	}
	rows := 0
	for _, r := range s.Page(2).Rects {
		if r.Rect.W == 420 && r.Rect.H == 16 {
			rows++
		}
	}
	if rows != 4 {
		t.Fatalf("page 2 has %d rows, want all 4", rows)
	}
}

func TestDrawHeaderOncePerPage(t *testing.T) {
	tab, c, s := newTable()
	items := make([]Item, 40)
	for i := range items {
		items[i] = Item{Text: "statement", IsTrue: i%2 == 0}
	}
	tab.Draw(c, 28, 420, items)
	if s.PageCount() < 2 {
		t.Fatalf("pages = %d, want a page break", s.PageCount())
	}
	for p := 1; p <= s.PageCount(); p++ {
		headers := 0
		for _, r := range s.Page(p).Rects {
			if r.Color == tab.Th.HeaderFill {
				headers++
			}
		}
		if headers > 1 {
			t.Fatalf("page %d has %d header bars", p, headers)
		}
	}
}

func TestReadCSVGroupsAndSorts(t *testing.T) {
	data := "Chapter,QuestionID,QuestionText,AnswerNumber,AnswerText,CorrectFlag\n" +
		"2a,Q7,Il segnale indica,1,divieto di sosta,1\n" +
		"2a,Q7,Il segnale indica,2,obbligo di svolta,0\n" +
		"1b,Q3,In autostrada,1,si puo sostare,0\n" +
		"10a,Q9,La patente,1,scade,1\n" +
		"1a,Q1,Il semaforo,1,regola il transito,1\n"
	qs, err := ReadCSV(strings.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if len(qs) != 4 {
		t.Fatalf("got %d questions, want 4", len(qs))
	}
	order := []string{"1a", "1b", "2a", "10a"}
	for i, want := range order {
		if qs[i].Chapter != want {
			t.Fatalf("chapter %d = %q, want %q", i, qs[i].Chapter, want)
		}
	}
	var q7 Question
	for _, q := range qs {
		if q.ID == "Q7" {
			q7 = q
		}
	}
	if len(q7.Answers) != 2 {
		t.Fatalf("Q7 has %d answers, want 2", len(q7.Answers))
	}
	items := q7.Items()
	if !items[0].IsTrue || items[1].IsTrue {
		t.Fatalf("Q7 items = %+v", items)
	}
}

func TestReadCSVFileWindows1252(t *testing.T) {
	// \xe8 and \xe0 are è and à in Windows-1252 and invalid UTF-8
	data := "Chapter,QuestionID,QuestionText,AnswerNumber,AnswerText,CorrectFlag\n" +
		"1a,Q1,La precedenza \xe8 obbligatoria,1,si d\xe0 a destra V,1\n"
	path := filepath.Join(t.TempDir(), "quiz.csv")
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	qs, err := ReadCSVFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(qs) != 1 {
		t.Fatalf("got %d questions, want 1", len(qs))
	}
	if qs[0].Text != "La precedenza è obbligatoria" {
		t.Fatalf("question text = %q", qs[0].Text)
	}
	if qs[0].Answers[0].Text != "si dà a destra V" {
		t.Fatalf("answer text = %q", qs[0].Answers[0].Text)
	}
}

func TestReadCSVRejectsWrongHeader(t *testing.T) {
	if _, err := ReadCSV(strings.NewReader("A,B,C,D,E,F\n")); err == nil {
		t.Fatal("expected header error")
	}
}
