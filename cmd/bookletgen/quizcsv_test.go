package main

import (
	"testing"

	"github.com/lvillar/bookletgen/quiz"
	"github.com/lvillar/bookletgen/surface"
	"github.com/lvillar/bookletgen/theme"
)

func TestRenderQuizBookletFirstChapterAtTop(t *testing.T) {
	th := theme.Default()
	s := surface.NewHeadless(th.Page.Width, th.Page.Height)
	questions := []quiz.Question{
		{
			Chapter: "1a",
			ID:      "Q1",
			Text:    "Il semaforo regola il transito",
			Answers: []quiz.Answer{{Number: 1, Text: "vero V", Correct: true}},
		},
		{
			Chapter: "1b",
			ID:      "Q2",
			Text:    "In autostrada si puo sostare",
			Answers: []quiz.Answer{{Number: 1, Text: "falso F", Correct: false}},
		},
	}
	renderQuizBooklet(s, th, questions, quiz.FilterAll)

	var first, second surface.DrawnText
	ok1, ok2 := false, false
	for _, txt := range s.Page(1).Texts {
		switch txt.Text {
		case "Capitolo 1a":
			first, ok1 = txt, true
		case "Capitolo 1b":
			second, ok2 = txt, true
		}
	}
	if !ok1 || !ok2 {
		t.Fatal("chapter headers missing")
	}
	if first.Rect.Y != th.Page.MarginTop {
		t.Fatalf("first chapter header y = %g, want %g", first.Rect.Y, th.Page.MarginTop)
	}
	if second.Rect.Y <= first.Rect.Y {
		t.Fatal("later chapter must sit below the first")
	}
}
