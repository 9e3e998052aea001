package iocli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Stdio is the process terminal: prompts and output go to stdout, answers come from stdin.
type Stdio struct {
	reader *bufio.Reader
}

// NewStdio returns IO bound to os.Stdin and os.Stdout.
func NewStdio() IO {
	return &Stdio{}
}

func (s *Stdio) Println(a ...any) {
	fmt.Fprintln(os.Stdout, a...)
}

func (s *Stdio) Printf(format string, a ...any) {
	fmt.Fprintf(os.Stdout, format, a...)
}

func (s *Stdio) Write(p []byte) (int, error) {
	return os.Stdout.Write(p)
}

// ReadInput prints prompt and returns one trimmed line of input.
// io.EOF means stdin is closed, e.g. piped input ran out of answers.
func (s *Stdio) ReadInput(prompt string) (string, error) {
	s.Printf("%s", prompt)
	// Один reader на все вызовы, иначе буферизованный ввод теряется
	if s.reader == nil {
		s.reader = bufio.NewReader(os.Stdin)
	}
	line, err := s.reader.ReadString('\n')
	if err != nil && (line == "" || err != io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// IsTerminal reports whether stdout is an interactive terminal.
func (s *Stdio) IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
