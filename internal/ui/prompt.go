package ui

import (
	"github.com/AlecAivazis/survey/v2"
)

// Confirm asks a yes/no question. In non-interactive mode it returns
// defaultYes without prompting.
func (u *UI) Confirm(prompt string, defaultYes bool) (bool, error) {
	if u.nonInteractive {
		return defaultYes, nil
	}

	var result bool
	p := &survey.Confirm{
		Message: prompt,
		Default: defaultYes,
	}
	if err := survey.AskOne(p, &result); err != nil {
		return false, err
	}
	return result, nil
}
