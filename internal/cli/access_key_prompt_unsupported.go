//go:build !windows && !linux && !darwin && !freebsd && !netbsd && !openbsd && !dragonfly

package cli

import "os"

func readSecretNoEcho(_ *os.File) ([]byte, error) {
	return nil, errNoTerminal
}
