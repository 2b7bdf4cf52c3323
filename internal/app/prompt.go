package app

import (
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// ErrAborted is returned when the user interrupts a prompt.
var ErrAborted = errors.New("aborted by user")

// Prompter asks the user questions. Implementations return ErrAborted when
// the user cancels.
type Prompter interface {
	Select(message string, options []string, def string) (string, error)
	MultiSelect(message string, options []string) ([]string, error)
	Input(message, def string) (string, error)
	Confirm(message string, def bool) (bool, error)
}

// SurveyPrompter asks questions on the terminal.
type SurveyPrompter struct {
	opts []survey.AskOpt
}

// NewSurveyPrompter creates a terminal prompter.
func NewSurveyPrompter(opts ...survey.AskOpt) *SurveyPrompter {
	return &SurveyPrompter{opts: opts}
}

func (p *SurveyPrompter) Select(message string, options []string, def string) (string, error) {
	var answer string
	q := &survey.Select{Message: message, Options: options, PageSize: 12}
	if def != "" {
		q.Default = def
	}
	return answer, p.ask(q, &answer)
}

func (p *SurveyPrompter) MultiSelect(message string, options []string) ([]string, error) {
	var answer []string
	q := &survey.MultiSelect{Message: message, Options: options, PageSize: 12}
	return answer, p.ask(q, &answer)
}

func (p *SurveyPrompter) Input(message, def string) (string, error) {
	var answer string
	return answer, p.ask(&survey.Input{Message: message, Default: def}, &answer)
}

func (p *SurveyPrompter) Confirm(message string, def bool) (bool, error) {
	var answer bool
	return answer, p.ask(&survey.Confirm{Message: message, Default: def}, &answer)
}

func (p *SurveyPrompter) ask(q survey.Prompt, answer any) error {
	if err := survey.AskOne(q, answer, p.opts...); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return ErrAborted
		}
		return fmt.Errorf("prompt failed: %w", err)
	}
	return nil
}
