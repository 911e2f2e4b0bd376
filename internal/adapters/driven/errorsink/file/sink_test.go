package file

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSink_Record_AppendsLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "error.log")
	sink, err := NewSink(path)
	require.NoError(t, err)

	sink.Record("a.txt", errors.New("unreadable"))
	sink.Record("b.txt", errors.New("no tables"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "a.txt: unreadable")
	assert.Contains(t, content, "b.txt: no tables")
}

func TestSink_Record_Concurrent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "error.log")
	sink, err := NewSink(path)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sink.Record("doc.txt", errors.New("boom"))
		}()
	}
	wg.Wait()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}
