package cli

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/iudanet/focuskeeper/internal/client/iocli"
)

// testOutput собирает весь вывод команды
type testOutput struct {
	buf bytes.Buffer
	mu  sync.Mutex
}

func (o *testOutput) write(p []byte) (int, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.buf.Write(p)
}

func (o *testOutput) String() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.buf.String()
}

// newTestIO returns an IO mock that records output and answers prompts in order.
func newTestIO(terminal bool, answers ...string) (*iocli.IOMock, *testOutput) {
	out := &testOutput{}
	var mu sync.Mutex

	mock := &iocli.IOMock{
		PrintlnFunc: func(a ...any) {
			_, _ = out.write([]byte(fmt.Sprintln(a...)))
		},
		PrintfFunc: func(format string, a ...any) {
			_, _ = out.write([]byte(fmt.Sprintf(format, a...)))
		},
		WriteFunc: out.write,
		IsTerminalFunc: func() bool {
			return terminal
		},
		ReadInputFunc: func(prompt string) (string, error) {
			mu.Lock()
			defer mu.Unlock()
			if len(answers) == 0 {
				return "", io.EOF
			}
			answer := answers[0]
			answers = answers[1:]
			return answer, nil
		},
	}
	return mock, out
}
