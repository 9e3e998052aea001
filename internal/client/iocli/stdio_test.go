package iocli

import (
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withStdin подменяет os.Stdin на pipe с заданным вводом
func withStdin(t *testing.T, input string) {
	t.Helper()

	r, w, err := os.Pipe()
	require.NoError(t, err)
	_, err = w.WriteString(input)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	old := os.Stdin
	os.Stdin = r
	t.Cleanup(func() {
		os.Stdin = old
		_ = r.Close()
	})
}

// withStdout перенаправляет os.Stdout в pipe и возвращает функцию чтения вывода
func withStdout(t *testing.T) func() string {
	t.Helper()

	r, w, err := os.Pipe()
	require.NoError(t, err)

	old := os.Stdout
	os.Stdout = w
	t.Cleanup(func() {
		os.Stdout = old
	})

	return func() string {
		os.Stdout = old
		require.NoError(t, w.Close())
		out, err := io.ReadAll(r)
		require.NoError(t, err)
		require.NoError(t, r.Close())
		return string(out)
	}
}

func TestStdio_ReadInput_SharesBuffer(t *testing.T) {
	withStdin(t, "2026-03-01\n  Dentist at 15:00  \nlast line without newline")
	read := withStdout(t)

	stdio := NewStdio()

	date, err := stdio.ReadInput("Date: ")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-01", date)

	content, err := stdio.ReadInput("Content: ")
	require.NoError(t, err)
	assert.Equal(t, "Dentist at 15:00", content)

	last, err := stdio.ReadInput("Notes: ")
	require.NoError(t, err)
	assert.Equal(t, "last line without newline", last)

	_, err = stdio.ReadInput("More: ")
	assert.ErrorIs(t, err, io.EOF)

	assert.Equal(t, "Date: Content: Notes: More: ", read())
}

func TestStdio_Output(t *testing.T) {
	read := withStdout(t)

	stdio := NewStdio()
	stdio.Println("✓ Added project", "p-1")
	stdio.Printf("Pending sync: %d change(s)\n", 2)
	n, err := stdio.Write([]byte("raw"))
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	// Вывод в pipe не является терминалом
	assert.False(t, stdio.IsTerminal())

	assert.Equal(t, "✓ Added project p-1\nPending sync: 2 change(s)\nraw", read())
}
