// Package rewrite holds the request state behind the editor and runs one
// generation per user action.
package rewrite

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sant0-9/quill/internal/logging"
	"github.com/sant0-9/quill/internal/prompts"
)

const (
	CopyLabel   = "Copy"
	CopiedLabel = "Copied!"

	// CopyLabelDelay is how long CopiedLabel stays before reverting
	CopyLabelDelay = 2 * time.Second

	fallbackErrorMessage = "an unexpected error occurred"
)

var (
	ErrEmptyInput    = errors.New("please enter some text to process")
	ErrCopyFailed    = errors.New("failed to copy text")
	ErrUnknownAction = errors.New("unknown action")
)

// Generator turns a prompt into generated text
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Clipboard receives copied output
type Clipboard interface {
	WriteAll(text string) error
}

// State is everything the view renders. Err is empty when there is no error.
type State struct {
	Input          string
	Action         prompts.ActionKind
	TargetLanguage string
	Output         string
	Loading        bool
	Err            string
	CopyLabel      string
}

// Controller owns a State and mutates it in response to user actions. It is
// not safe for concurrent use; callers drive it from a single event loop.
type Controller struct {
	gen   Generator
	clip  Clipboard
	log   *zap.Logger
	state State

	copyToken int
}

func NewController(gen Generator, clip Clipboard, log *zap.Logger) *Controller {
	return &Controller{
		gen:  gen,
		clip: clip,
		log:  logging.OrNop(log),
		state: State{
			Action:         prompts.ActionImprove,
			TargetLanguage: prompts.DefaultLanguage,
			CopyLabel:      CopyLabel,
		},
	}
}

// State returns a copy of the current state
func (c *Controller) State() State {
	return c.state
}

// SetGenerator swaps the generator, e.g. after the provider settings change
func (c *Controller) SetGenerator(gen Generator) {
	c.gen = gen
}

func (c *Controller) SetInput(text string) {
	c.state.Input = text
}

func (c *Controller) SetTargetLanguage(lang string) {
	c.state.TargetLanguage = lang
}

// SelectAction sets the action to run. Only members of the enumeration are
// accepted.
func (c *Controller) SelectAction(kind prompts.ActionKind) error {
	if !kind.Valid() {
		return ErrUnknownAction
	}
	c.state.Action = kind
	return nil
}

// Begin validates the input and moves the state into loading. It returns the
// prompt to send, or false when the input is empty (the validation error is
// then set and nothing should be sent).
func (c *Controller) Begin() (string, bool) {
	text := strings.TrimSpace(c.state.Input)
	if text == "" {
		c.state.Err = ErrEmptyInput.Error()
		return "", false
	}

	c.state.Loading = true
	c.state.Err = ""
	c.state.Output = ""
	c.state.CopyLabel = CopyLabel
	c.copyToken++

	return prompts.Build(c.state.Action, text, c.state.TargetLanguage), true
}

// Finish records the outcome of the request started by Begin and always
// clears the loading flag.
func (c *Controller) Finish(text string, err error) {
	defer func() { c.state.Loading = false }()

	if err != nil {
		msg := err.Error()
		if msg == "" {
			msg = fallbackErrorMessage
		}
		c.state.Err = msg
		c.log.Debug("request finished with error",
			zap.String("action", c.state.Action.String()),
			zap.String("error", msg))
		return
	}

	c.state.Output = strings.TrimSpace(text)
}

// ProcessText runs Begin, the generator and Finish in sequence
func (c *Controller) ProcessText(ctx context.Context) {
	prompt, ok := c.Begin()
	if !ok {
		return
	}

	defer func() { c.state.Loading = false }()

	text, err := c.gen.Generate(ctx, prompt)
	c.Finish(text, err)
}

// CopyToClipboard copies the output. On success the label switches to
// CopiedLabel and the returned token must be handed to ResetCopyLabel after
// CopyLabelDelay. ok is false when nothing was copied.
func (c *Controller) CopyToClipboard() (token int, ok bool) {
	if c.state.Output == "" {
		return 0, false
	}

	if err := c.clip.WriteAll(c.state.Output); err != nil {
		c.log.Warn("clipboard write failed", zap.Error(err))
		c.state.Err = ErrCopyFailed.Error()
		return 0, false
	}

	c.copyToken++
	c.state.CopyLabel = CopiedLabel
	return c.copyToken, true
}

// ResetCopyLabel reverts the copy label if token belongs to the latest copy.
// Stale or repeated tokens are ignored, so each copy reverts at most once.
func (c *Controller) ResetCopyLabel(token int) bool {
	if token != c.copyToken || c.state.CopyLabel == CopyLabel {
		return false
	}
	c.state.CopyLabel = CopyLabel
	return true
}
