package draft

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shiftbill/internal/app/client"
)

func TestPrintDraft(t *testing.T) {
	var buf bytes.Buffer
	printDraft(&buf, &client.Draft{
		RequestID: "req-1",
		Subject:   "Invoice #42",
		CC:        "ops@example.com",
		Content:   "Hello!",
		SavedAt:   time.Now(),
	})

	out := buf.String()
	assert.Contains(t, out, "Invoice #42")
	assert.Contains(t, out, "ops@example.com")
	assert.NotContains(t, out, "Скрытая")
	assert.Contains(t, out, "Hello!")
}

func TestReadContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "body.txt")
	require.NoError(t, os.WriteFile(path, []byte("line one\nline two"), 0o600))

	got, err := readContent(path)

	require.NoError(t, err)
	assert.Equal(t, "line one\nline two", got)

	_, err = readContent(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}
