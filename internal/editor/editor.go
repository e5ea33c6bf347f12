// Package editor opens content source files in the user's editor.
package editor

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Command builds the editor invocation for path from $VISUAL, then
// $EDITOR, then vi. The variable may carry arguments, as in "code -w".
func Command(path string) (*exec.Cmd, error) {
	value := os.Getenv("VISUAL")
	if value == "" {
		value = os.Getenv("EDITOR")
	}
	if value == "" {
		value = "vi"
	}
	fields := strings.Fields(value)
	if len(fields) == 0 {
		return nil, errors.New("editor command is blank")
	}
	cmd := exec.Command(fields[0], append(fields[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd, nil
}

// Open edits path and waits for the editor to exit.
func Open(path string) error {
	cmd, err := Command(path)
	if err != nil {
		return err
	}
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("editor %q: %w", cmd.Path, err)
	}
	return nil
}
