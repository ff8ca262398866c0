package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// passphraseEnv overrides the interactive prompt.
const passphraseEnv = "DLG_KEYSTORE_PASSPHRASE"

// readPassphrase resolves the keystore passphrase from passphraseEnv or by
// prompting on stderr. Whitespace-only passphrases are rejected.
func readPassphrase(prompt string) (string, error) {
	if value, ok := os.LookupEnv(passphraseEnv); ok {
		if strings.TrimSpace(value) == "" {
			return "", fmt.Errorf("%s is set but empty", passphraseEnv)
		}
		return value, nil
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return "", fmt.Errorf("keystore passphrase required; set %s or run interactively", passphraseEnv)
	}

	fmt.Fprint(os.Stderr, prompt)
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read passphrase: %w", err)
	}

	passphrase := string(raw)
	if strings.TrimSpace(passphrase) == "" {
		return "", errors.New("keystore passphrase cannot be empty")
	}
	return passphrase, nil
}
