package ui

import (
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
)

// PromptExpression asks for a date expression. check runs on every
// answer so a typo can be corrected before the prompt returns.
func PromptExpression(check func(string) error) (string, error) {
	var expr string
	prompt := &survey.Input{
		Message: "Date expression:",
		Help:    "Examples: next tuesday 5pm, 2004-01-29, 3 days ago, jan 29 12:00 2004 EST",
	}

	validate := func(ans interface{}) error {
		s, ok := ans.(string)
		if !ok {
			return errors.New("expected text")
		}
		if check == nil {
			return nil
		}
		return check(s)
	}

	if err := survey.AskOne(prompt, &expr, survey.WithValidator(survey.Required), survey.WithValidator(validate)); err != nil {
		return "", err
	}

	return expr, nil
}

// SelectEngines lets the user pick which comparison engines to run
func SelectEngines(available, preselected []string) ([]string, error) {
	if len(available) == 0 {
		return nil, fmt.Errorf("no engines available")
	}

	var selected []string
	prompt := &survey.MultiSelect{
		Message: "Compare against:",
		Options: available,
		Default: preselected,
	}

	if err := survey.AskOne(prompt, &selected, survey.WithValidator(survey.MinItems(1))); err != nil {
		return nil, err
	}

	return selected, nil
}

// Confirm asks the user for confirmation
func Confirm(message string) (bool, error) {
	var confirmed bool
	prompt := &survey.Confirm{
		Message: message,
		Default: false,
	}

	if err := survey.AskOne(prompt, &confirmed); err != nil {
		return false, err
	}

	return confirmed, nil
}
