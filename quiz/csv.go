package quiz

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Answer is one row of a question group from the ministry CSV export.
type Answer struct {
	Number  int
	Text    string
	Correct bool
}

// Question groups the CSV rows that share a QuestionID.
type Question struct {
	Chapter string
	ID      string
	Text    string
	Answers []Answer
}

// Items converts a question's answers into quiz items. The correct
// flag marks true statements.
func (q Question) Items() []Item {
	items := make([]Item, 0, len(q.Answers))
	for _, a := range q.Answers {
		items = append(items, Item{Text: a.Text, IsTrue: a.Correct})
	}
	return items
}

// csvColumns is the expected header of the quiz export.
var csvColumns = []string{"Chapter", "QuestionID", "QuestionText", "AnswerNumber", "AnswerText", "CorrectFlag"}

// ReadCSV parses the quiz export, grouping consecutive rows by
// QuestionID and ordering questions by natural chapter order.
func ReadCSV(r io.Reader) ([]Question, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(csvColumns)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("quiz: read csv header: %w", err)
	}
	for i, want := range csvColumns {
		if !strings.EqualFold(strings.TrimSpace(header[i]), want) {
			return nil, fmt.Errorf("quiz: csv column %d is %q, want %q", i+1, header[i], want)
		}
	}

	var questions []Question
	index := map[string]int{}
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("quiz: read csv: %w", err)
		}
		id := strings.TrimSpace(rec[1])
		num, _ := strconv.Atoi(strings.TrimSpace(rec[3]))
		ans := Answer{
			Number:  num,
			Text:    strings.TrimSpace(rec[4]),
			Correct: parseFlag(rec[5]),
		}
		if i, ok := index[id]; ok {
			questions[i].Answers = append(questions[i].Answers, ans)
			continue
		}
		index[id] = len(questions)
		questions = append(questions, Question{
			Chapter: strings.TrimSpace(rec[0]),
			ID:      id,
			Text:    strings.TrimSpace(rec[2]),
			Answers: []Answer{ans},
		})
	}

	sort.SliceStable(questions, func(i, j int) bool {
		return naturalLess(questions[i].Chapter, questions[j].Chapter)
	})
	return questions, nil
}

// ReadCSVFile reads a quiz export from disk. Files that are not valid
// UTF-8 are retried as Windows-1252, the encoding the spreadsheet
// exports actually arrive in.
func ReadCSVFile(path string) ([]Question, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("quiz: read %s: %w", path, err)
	}
	if !utf8.Valid(data) {
		decoded, _, err := transform.Bytes(charmap.Windows1252.NewDecoder(), data)
		if err != nil {
			return nil, fmt.Errorf("quiz: decode %s as windows-1252: %w", path, err)
		}
		data = decoded
	}
	qs, err := ReadCSV(strings.NewReader(string(data)))
	if err != nil {
		return nil, fmt.Errorf("quiz: %s: %w", path, err)
	}
	return qs, nil
}

func parseFlag(s string) bool {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "1", "V", "T", "TRUE", "Y", "S", "SI":
		return true
	}
	return false
}

// naturalLess orders chapter labels like 1a, 1b, 2a, 10a by numeric
// prefix first, then the rest lexically.
func naturalLess(a, b string) bool {
	na, ra := splitNum(a)
	nb, rb := splitNum(b)
	if na != nb {
		return na < nb
	}
	return ra < rb
}

func splitNum(s string) (int, string) {
	i := 0
	for i < len(s) && unicode.IsDigit(rune(s[i])) {
		i++
	}
	if i == 0 {
		return 0, s
	}
	n, _ := strconv.Atoi(s[:i])
	return n, s[i:]
}
