package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bigsister-app/bigsister/internal/core/quiz"
)

type quizState struct {
	run      *quiz.Run
	selected int
	busy     bool
}

func newQuizState() quizState {
	return quizState{run: quiz.NewRun()}
}

func (m Model) updateQuiz(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.quiz.busy {
		return m, nil
	}

	switch keyMsg.String() {
	case "esc":
		m.mode = chatView
		return m, nil

	case "up", "k":
		if m.quiz.selected > 0 {
			m.quiz.selected--
		}
		return m, nil

	case "down", "j":
		if q, ok := m.quiz.run.Current(); ok && m.quiz.selected < len(q.Answers)-1 {
			m.quiz.selected++
		}
		return m, nil

	case "enter":
		if m.quiz.run.Done() {
			m.quiz.busy = true
			return m, m.createSession(m.quiz.run.Answers())
		}
		if err := m.quiz.run.Answer(m.quiz.selected); err != nil {
			m.err = err
			return m, nil
		}
		m.quiz.selected = 0
		return m, nil
	}
	return m, nil
}

func (m Model) viewQuiz() string {
	var b strings.Builder
	b.WriteString(m.th.title.Render("Before we chat..."))
	b.WriteString("\n")
	b.WriteString(m.th.meta.Render("A quick check-in so she knows how you're doing."))
	b.WriteString("\n\n")

	if m.quiz.run.Done() {
		b.WriteString("All done. Thank you for sharing. 💜\n\n")
		if m.quiz.busy {
			b.WriteString(m.th.meta.Render("Starting your chat..."))
		} else {
			b.WriteString(m.th.help.Render("enter: start chatting | esc: back"))
		}
		return b.String()
	}

	q, _ := m.quiz.run.Current()
	n, total := m.quiz.run.Progress()
	b.WriteString(m.th.meta.Render(fmt.Sprintf("Question %d of %d", n, total)))
	b.WriteString("\n\n")
	b.WriteString(q.Text + "\n\n")
	for i, ans := range q.Answers {
		if i == m.quiz.selected {
			b.WriteString(m.th.selected.Render("► "+ans) + "\n")
		} else {
			b.WriteString(m.th.item.Render(ans) + "\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(m.th.help.Render("j/k: choose | enter: answer | esc: back"))
	return b.String()
}
