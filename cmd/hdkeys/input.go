package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// terminal returns r as a file when it is an interactive terminal.
func terminal(r io.Reader) *os.File {
	f, ok := r.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return nil
	}
	return f
}

// readSecret prompts on stderr and reads one line without echo. When stdin
// is not a terminal the line is read as-is, so secrets can be piped in.
func (a *app) readSecret(prompt string) ([]byte, error) {
	fmt.Fprint(a.stderr, prompt)
	if a.tty != nil {
		secret, err := term.ReadPassword(int(a.tty.Fd()))
		fmt.Fprintln(a.stderr) // newline after hidden input
		if err != nil {
			return nil, err
		}
		return secret, nil
	}

	line, err := a.stdin.ReadString('\n')
	if errors.Is(err, io.EOF) && line == "" {
		return nil, fmt.Errorf("no input")
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return []byte(strings.TrimRight(line, "\r\n")), nil
}

// mnemonicInput returns flagValue or prompts for the mnemonic.
func (a *app) mnemonicInput(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	m, err := a.readSecret("Mnemonic: ")
	if err != nil {
		return "", fmt.Errorf("read mnemonic: %w", err)
	}
	return string(m), nil
}

// passphraseInput prompts for the BIP-39 passphrase when asked to.
func (a *app) passphraseInput(prompt bool) (string, error) {
	if !prompt {
		return "", nil
	}
	p, err := a.readSecret("BIP-39 passphrase: ")
	if err != nil {
		return "", fmt.Errorf("read passphrase: %w", err)
	}
	return string(p), nil
}

// newPassword prompts twice for a keystore password.
func (a *app) newPassword() ([]byte, error) {
	password, err := a.readSecret("Enter password: ")
	if err != nil {
		return nil, fmt.Errorf("read password: %w", err)
	}
	confirm, err := a.readSecret("Confirm password: ")
	if err != nil {
		return nil, fmt.Errorf("read password: %w", err)
	}
	if string(password) != string(confirm) {
		return nil, fmt.Errorf("passwords do not match")
	}
	if len(password) == 0 {
		return nil, fmt.Errorf("password must not be empty")
	}
	return password, nil
}
