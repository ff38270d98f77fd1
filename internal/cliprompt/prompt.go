// Package cliprompt wraps promptui for the mxd CLI's interactive
// account-creation flow.
package cliprompt

import (
	"errors"
	"fmt"

	"github.com/manifoldco/promptui"
)

// ErrPasswordMismatch indicates the confirmation didn't match.
var ErrPasswordMismatch = errors.New("passwords do not match")

// ErrAborted indicates the user cancelled the prompt.
var ErrAborted = errors.New("aborted")

func wrapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrAbort) {
		return ErrAborted
	}
	return err
}

// InputRequired prompts for non-empty text input.
func InputRequired(label string) (string, error) {
	prompt := promptui.Prompt{
		Label: label,
		Validate: func(input string) error {
			if input == "" {
				return fmt.Errorf("%s is required", label)
			}
			return nil
		},
	}
	result, err := prompt.Run()
	return result, wrapError(err)
}

// PasswordWithConfirmation prompts for a password twice and requires they
// match and meet minLength.
func PasswordWithConfirmation(minLength int) (string, error) {
	prompt := promptui.Prompt{
		Label: "Password",
		Mask:  '*',
		Validate: func(input string) error {
			if len(input) < minLength {
				return fmt.Errorf("password must be at least %d characters", minLength)
			}
			return nil
		},
	}
	password, err := prompt.Run()
	if err != nil {
		return "", wrapError(err)
	}

	confirm := promptui.Prompt{Label: "Confirm password", Mask: '*'}
	confirmed, err := confirm.Run()
	if err != nil {
		return "", wrapError(err)
	}
	if password != confirmed {
		return "", ErrPasswordMismatch
	}
	return password, nil
}
