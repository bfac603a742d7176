package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// promptPassword reads a password without echo when stdin is a terminal, and a
// plain line otherwise.
func (a *App) promptPassword(prompt string) (string, error) {
	fmt.Fprint(a.errOut, prompt)
	if f, ok := a.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		secret, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(a.errOut)
		return string(secret), err
	}

	line, err := bufio.NewReader(a.in).ReadString('\n')
	line = strings.TrimRight(line, "\r\n")
	if line == "" && err != nil {
		return "", errors.New("no password given")
	}
	return line, nil
}

// passwordFlag returns the --password value, prompting when it is empty.
func (a *App) passwordFlag(value string) (string, error) {
	if value != "" {
		return value, nil
	}
	return a.password("Password: ")
}
