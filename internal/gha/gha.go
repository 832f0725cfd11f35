// Package gha implements the GitHub Actions side of the step contract:
// publishing outputs, masking secrets and reporting terminal failure.
// Everything is the plain-text workflow-command protocol, no SDK involved.
package gha

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"
)

// Action talks to the runner via stdout and the GITHUB_OUTPUT file.
type Action struct {
	stdout     io.Writer
	outputPath string

	failed  bool
	failure string
}

// New builds an Action wired to the real runner environment.
func New() *Action {
	return &Action{
		stdout:     os.Stdout,
		outputPath: os.Getenv("GITHUB_OUTPUT"),
	}
}

// NewForTest builds an Action writing commands to w and outputs to path.
func NewForTest(w io.Writer, path string) *Action {
	return &Action{stdout: w, outputPath: path}
}

// SetOutput appends name=value to the step's outputs file.
func (a *Action) SetOutput(name, value string) error {
	if a.outputPath == "" {
		return fmt.Errorf("GITHUB_OUTPUT is not set")
	}
	f, err := os.OpenFile(a.outputPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open outputs file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var line string
	if strings.ContainsAny(value, "\r\n") {
		delim := "ghadelim_" + randomHex(16)
		line = fmt.Sprintf("%s<<%s\n%s\n%s\n", name, delim, value, delim)
	} else {
		line = fmt.Sprintf("%s=%s\n", name, value)
	}
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("write output %s: %w", name, err)
	}
	return nil
}

// Mask registers value as a secret so the runner redacts it from all logs.
func (a *Action) Mask(value string) {
	fmt.Fprintf(a.stdout, "::add-mask::%s\n", escapeData(value))
}

// Infof prints a plain progress line.
func (a *Action) Infof(format string, args ...any) {
	fmt.Fprintf(a.stdout, format+"\n", args...)
}

// Failf records the terminal failure message and emits an error annotation.
// The first failure wins; later calls only annotate.
func (a *Action) Failf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(a.stdout, "::error::%s\n", escapeData(msg))
	if !a.failed {
		a.failed = true
		a.failure = msg
	}
}

// Failed reports whether Failf was called.
func (a *Action) Failed() bool { return a.failed }

// Failure returns the recorded terminal failure message, if any.
func (a *Action) Failure() string { return a.failure }

// escapeData encodes values embedded in workflow commands.
func escapeData(s string) string {
	s = strings.ReplaceAll(s, "%", "%25")
	s = strings.ReplaceAll(s, "\r", "%0D")
	s = strings.ReplaceAll(s, "\n", "%0A")
	return s
}

func randomHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
