package services

import "github.com/charmbracelet/bubbles/spinner"

// SpinnerFactory creates a new spinner
type SpinnerFactory func() spinner.Model

// DotSpinner is the spinner used by the terminal UI.
func DotSpinner() spinner.Model {
	return spinner.New(spinner.WithSpinner(spinner.Dot))
}
