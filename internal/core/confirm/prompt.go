// Package confirm implements the reusable confirmation-code modal: a
// single-slot asynchronous request for a 4-digit code, resolved by
// Submit and torn down by Cancel. Signup, PIN changes, and journal
// access all collect codes through the same prompt.
package confirm

import (
	"errors"
	"sync"
)

// CodeLength is the required number of digits.
const CodeLength = 4

var (
	// ErrCancelled is returned from Collect when the user dismisses the
	// prompt. Cancellation is an expected outcome, not a failure.
	ErrCancelled = errors.New("code entry cancelled")

	// ErrBusy is returned when Collect is called while another request
	// is still outstanding. Callers must resolve requests sequentially.
	ErrBusy = errors.New("a confirmation request is already outstanding")

	// ErrInvalidCode is returned from Submit when the input is not
	// exactly four digits. The request stays outstanding.
	ErrInvalidCode = errors.New("enter a 4-digit code")

	// ErrNoRequest is returned from Submit/Cancel when nothing is
	// outstanding.
	ErrNoRequest = errors.New("no confirmation request outstanding")
)

// Request describes one outstanding code-collection request.
type Request struct {
	Title       string
	Prompt      string
	SubmitLabel string
	Cancellable bool
}

type outcome struct {
	code string
	err  error
}

// Prompt collects confirmation codes. At most one request may be
// outstanding at a time; completion (resolve or cancel) is the only
// path that tears the request down. There is no timeout.
type Prompt struct {
	mu      sync.Mutex
	pending *Request
	result  chan outcome
}

// New returns an idle prompt.
func New() *Prompt {
	return &Prompt{}
}

// Collect blocks until the request resolves with a valid code or is
// cancelled. A second Collect while one is outstanding fails
// immediately with ErrBusy.
func (p *Prompt) Collect(req Request) (string, error) {
	p.mu.Lock()
	if p.pending != nil {
		p.mu.Unlock()
		return "", ErrBusy
	}
	r := req
	p.pending = &r
	p.result = make(chan outcome, 1)
	ch := p.result
	p.mu.Unlock()

	out := <-ch
	return out.code, out.err
}

// Outstanding returns the current request, if any. The render surface
// polls this to decide whether the modal is visible.
func (p *Prompt) Outstanding() (Request, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.pending == nil {
		return Request{}, false
	}
	return *p.pending, true
}

// Submit resolves the outstanding request with code. Anything other
// than exactly four digits returns ErrInvalidCode and leaves the
// request outstanding so the surface can show an inline message.
func (p *Prompt) Submit(code string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.pending == nil {
		return ErrNoRequest
	}
	if !validCode(code) {
		return ErrInvalidCode
	}
	p.result <- outcome{code: code}
	p.pending = nil
	p.result = nil
	return nil
}

// Cancel rejects the outstanding request. On a non-cancellable request
// this has no effect: the surface hides the cancel path and a stray
// cancel keystroke must not abandon the request.
func (p *Prompt) Cancel() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.pending == nil {
		return ErrNoRequest
	}
	if !p.pending.Cancellable {
		return nil
	}
	p.result <- outcome{err: ErrCancelled}
	p.pending = nil
	p.result = nil
	return nil
}

func validCode(code string) bool {
	if len(code) != CodeLength {
		return false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
