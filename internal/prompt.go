package internal

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
)

// PromptRoot asks for the project directory interactively.
func PromptRoot() (string, error) {
	var root string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Enter the Android project directory path").
				Placeholder(".").
				Value(&root).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("path is required")
					}
					return nil
				}),
		),
	)
	if err := form.Run(); err != nil {
		return "", fmt.Errorf("prompt cancelled: %w", err)
	}
	return strings.TrimSpace(root), nil
}
