// Package quiz runs the short check-in taken before a new chat
// session. The answers seed the session so the first reply can speak
// to how the user is doing.
package quiz

import "fmt"

// Question is one check-in question with its fixed answer choices.
type Question struct {
	Text    string
	Answers []string
}

var questions = []Question{
	{"In one word, how are you feeling right now?", []string{"Overwhelmed", "Sad", "Anxious", "Okay"}},
	{"How has your energy been lately?", []string{"Totally drained", "Lower than usual", "Pretty normal", "Full of energy"}},
	{"What's taking up most of your headspace?", []string{"Relationships with others", "School or work pressure", "How I feel about myself", "Something from the past"}},
	{"Have you felt more like being alone or with people?", []string{"Definitely alone", "A little of both", "I want to be around others", "I haven't thought about it"}},
	{"How have you been sleeping?", []string{"Restlessly, or not enough", "A bit off", "Fairly well", "Very well"}},
	{"How does the idea of the next few days feel?", []string{"Daunting or scary", "A bit stressful", "Manageable", "Hopeful or exciting"}},
	{"Have you been able to do things you normally enjoy?", []string{"Not at all", "Only a little", "For the most part", "Yes, definitely"}},
	{"How critical have you been of yourself recently?", []string{"Extremely critical", "More than usual", "About the same", "I've been kind to myself"}},
	{"Where do you feel the most tension in your body?", []string{"In my chest or stomach", "In my shoulders or neck", "Headaches", "I feel pretty relaxed"}},
	{"What kind of support feels most needed right now?", []string{"Just someone to listen", "Help finding a distraction", "Understanding my feelings", "I'm not sure yet"}},
}

// Run tracks progress through the check-in.
type Run struct {
	index   int
	answers []string
}

// NewRun starts a fresh check-in.
func NewRun() *Run {
	return &Run{}
}

// Current returns the question awaiting an answer. ok is false once
// the check-in is complete.
func (r *Run) Current() (Question, bool) {
	if r.index >= len(questions) {
		return Question{}, false
	}
	return questions[r.index], true
}

// Progress returns the 1-based position and total question count.
func (r *Run) Progress() (int, int) {
	n := r.index + 1
	if n > len(questions) {
		n = len(questions)
	}
	return n, len(questions)
}

// Answer records the choice at the given index for the current
// question and advances.
func (r *Run) Answer(choice int) error {
	q, ok := r.Current()
	if !ok {
		return fmt.Errorf("check-in already complete")
	}
	if choice < 0 || choice >= len(q.Answers) {
		return fmt.Errorf("answer %d out of range for %q", choice, q.Text)
	}
	r.answers = append(r.answers, fmt.Sprintf("%s: %s", q.Text, q.Answers[choice]))
	r.index++
	return nil
}

// Done reports whether every question has been answered.
func (r *Run) Done() bool {
	return r.index >= len(questions)
}

// Answers returns the recorded "question: answer" lines used to seed
// the new session.
func (r *Run) Answers() []string {
	out := make([]string, len(r.answers))
	copy(out, r.answers)
	return out
}

// Questions returns the full question list.
func Questions() []Question {
	out := make([]Question, len(questions))
	copy(out, questions)
	return out
}
