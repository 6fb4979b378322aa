//go:build windows

package cli

import (
	"fmt"
	"os"

	"golang.org/x/sys/windows"
)

func readSecretNoEcho(stdin *os.File) ([]byte, error) {
	if stdin == nil {
		return nil, errNoTerminal
	}

	handle := windows.Handle(stdin.Fd())
	var restoreMode uint32
	if err := windows.GetConsoleMode(handle, &restoreMode); err != nil {
		return nil, fmt.Errorf("%w: %v", errNoTerminal, err)
	}

	if err := windows.SetConsoleMode(handle, restoreMode&^windows.ENABLE_ECHO_INPUT); err != nil {
		return nil, fmt.Errorf("disable echo: %w", err)
	}
	defer func() {
		_ = windows.SetConsoleMode(handle, restoreMode)
	}()

	return readSecretLine(stdin)
}
