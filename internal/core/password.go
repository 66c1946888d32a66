package core

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/term"

	"github.com/BarkinBalci/gearstick-cli/internal/secret"
)

// SecretEnv holds a credential password for non-interactive use
const SecretEnv = "GEARSTICK_SECRET"

var (
	ErrEmptySecret    = errors.New("password must not be empty")
	ErrSecretMismatch = errors.New("passwords do not match")
	ErrInvalidSecret  = errors.New("password is not valid UTF-8")
)

// Prompter asks for secrets on a terminal without echo. Prompts are
// written to Out so that stdout stays usable in pipelines.
type Prompter struct {
	Fd  int
	Out io.Writer

	readPassword func(fd int) ([]byte, error)
}

// NewPrompter returns a Prompter reading from stdin and prompting on stderr
func NewPrompter() *Prompter {
	return &Prompter{
		Fd:           int(os.Stdin.Fd()),
		Out:          os.Stderr,
		readPassword: term.ReadPassword,
	}
}

// IsTerminal reports whether the prompter's input is interactive
func (p *Prompter) IsTerminal() bool {
	return term.IsTerminal(p.Fd)
}

func (p *Prompter) read(label string) ([]byte, error) {
	fmt.Fprintf(p.Out, "%s: ", label)
	value, err := p.readPassword(p.Fd)
	fmt.Fprintln(p.Out)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", strings.ToLower(label), err)
	}
	return value, nil
}

// Confirm reads a secret twice and returns it when both entries match.
// Intermediate buffers are cleared; the caller owns the result.
func (p *Prompter) Confirm(label string) ([]byte, error) {
	first, err := p.read(label)
	if err != nil {
		return nil, err
	}
	switch {
	case len(first) == 0:
		return nil, ErrEmptySecret
	case !utf8.Valid(first):
		secret.ClearBytes(first)
		return nil, ErrInvalidSecret
	}

	second, err := p.read("Confirm " + strings.ToLower(label))
	if err != nil {
		secret.ClearBytes(first)
		return nil, err
	}
	defer secret.ClearBytes(second)

	if !secret.ConstantTimeCompare(first, second) {
		secret.ClearBytes(first)
		return nil, ErrSecretMismatch
	}
	return first, nil
}

// SecretFromEnv returns the value of SecretEnv. An empty variable counts
// as unset.
func SecretFromEnv() ([]byte, bool, error) {
	value, ok := os.LookupEnv(SecretEnv)
	if !ok || value == "" {
		return nil, false, nil
	}
	if !utf8.ValidString(value) {
		return nil, true, fmt.Errorf("%s: %w", SecretEnv, ErrInvalidSecret)
	}
	return []byte(value), true, nil
}

// StdinIsTerminal reports whether standard input is an interactive terminal
func StdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// ReadLine reads one line from r without the trailing newline
func ReadLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
