package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

var errNoTerminal = errors.New("stdin is not a terminal")

// promptAccessKey asks for the web3forms access key when none is configured.
func (options *rootOptions) promptAccessKey() (string, error) {
	fmt.Fprint(options.stderr, blue("web3forms access key: "))
	secret, err := options.readSecret()
	fmt.Fprintln(options.stderr)
	if err != nil {
		return "", fmt.Errorf("read access key: %w", err)
	}

	key := strings.TrimSpace(string(secret))
	if key == "" {
		return "", errors.New("access key is required")
	}
	return key, nil
}

func readSecretLine(reader io.Reader) ([]byte, error) {
	line, err := bufio.NewReader(reader).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return []byte(strings.TrimRight(line, "\r\n")), nil
}
