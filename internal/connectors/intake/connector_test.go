package intake

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cdsupport/poscan/internal/core/domain"
)

func newTestConnector(t *testing.T) (*Connector, string) {
	t.Helper()
	dir := t.TempDir()
	conn, err := NewConnector(dir)
	require.NoError(t, err)
	return conn, dir
}

func writeDoc(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0600))
}

func TestConnector_List_SkipsSidecarsAndHiddenFiles(t *testing.T) {
	conn, dir := newTestConnector(t)
	writeDoc(t, dir, "po1.txt", "content")
	writeDoc(t, dir, "po1.txt.meta.toml", `subject = "PO 1"`)
	writeDoc(t, dir, ".hidden", "x")

	descriptors, err := conn.List(context.Background())

	require.NoError(t, err)
	require.Len(t, descriptors, 1)
	assert.Equal(t, "po1.txt", descriptors[0].ExternalID)
	assert.Equal(t, filepath.Join(dir, "po1.txt"), descriptors[0].Location)
}

func TestConnector_List_ReadsSidecar(t *testing.T) {
	conn, dir := newTestConnector(t)
	writeDoc(t, dir, "po1.txt", "content")
	writeDoc(t, dir, "po1.txt.meta.toml", `recipients = ["a@example.com", "b@example.com"]
received_at = 2026-08-12T09:30:00Z
subject = "PO 4500111111"`)

	descriptors, err := conn.List(context.Background())

	require.NoError(t, err)
	require.Len(t, descriptors, 1)
	desc := descriptors[0]
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, desc.Recipients)
	assert.Equal(t, "PO 4500111111", desc.Subject)
	assert.True(t, desc.ReceivedAt.Equal(time.Date(2026, 8, 12, 9, 30, 0, 0, time.UTC)))
}

func TestConnector_List_OldestFirst(t *testing.T) {
	conn, dir := newTestConnector(t)
	writeDoc(t, dir, "new.txt", "x")
	writeDoc(t, dir, "new.txt.meta.toml", "received_at = 2026-08-12T10:00:00Z")
	writeDoc(t, dir, "old.txt", "x")
	writeDoc(t, dir, "old.txt.meta.toml", "received_at = 2026-08-12T09:00:00Z")

	descriptors, err := conn.List(context.Background())

	require.NoError(t, err)
	require.Len(t, descriptors, 2)
	assert.Equal(t, "old.txt", descriptors[0].ExternalID)
	assert.Equal(t, "new.txt", descriptors[1].ExternalID)
}

func TestConnector_List_MalformedSidecarIsIgnored(t *testing.T) {
	conn, dir := newTestConnector(t)
	writeDoc(t, dir, "po1.txt", "content")
	writeDoc(t, dir, "po1.txt.meta.toml", "not valid toml [[[")

	descriptors, err := conn.List(context.Background())

	require.NoError(t, err)
	require.Len(t, descriptors, 1)
	assert.Empty(t, descriptors[0].Recipients)
}

func TestConnector_Open(t *testing.T) {
	conn, dir := newTestConnector(t)
	writeDoc(t, dir, "po1.txt", "page one\fpage two")

	doc, err := conn.Open(context.Background(), domain.Descriptor{
		ExternalID: "po1.txt",
		Location:   filepath.Join(dir, "po1.txt"),
	})

	require.NoError(t, err)
	assert.Len(t, doc.Pages, 2)
}

func TestConnector_Open_MissingFile(t *testing.T) {
	conn, dir := newTestConnector(t)

	_, err := conn.Open(context.Background(), domain.Descriptor{
		ExternalID: "gone.txt",
		Location:   filepath.Join(dir, "gone.txt"),
	})

	assert.ErrorIs(t, err, domain.ErrUnreadableDocument)
}

func TestConnector_Consume_RetiresDocumentAndSidecar(t *testing.T) {
	conn, dir := newTestConnector(t)
	writeDoc(t, dir, "po1.txt", "content")
	writeDoc(t, dir, "po1.txt.meta.toml", `subject = "PO 1"`)

	err := conn.Consume(context.Background(), domain.Descriptor{ExternalID: "po1.txt"})

	require.NoError(t, err)
	descriptors, err := conn.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, descriptors)

	// The document is parked, not lost.
	_, err = os.Stat(filepath.Join(dir, processedDir, "po1.txt"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, processedDir, "po1.txt.meta.toml"))
	assert.NoError(t, err)
}

func TestConnector_Consume_DocumentAlreadyMoved(t *testing.T) {
	conn, dir := newTestConnector(t)
	writeDoc(t, dir, "po1.txt.meta.toml", `subject = "PO 1"`)

	// Filing already took the document itself; only the sidecar is left.
	err := conn.Consume(context.Background(), domain.Descriptor{ExternalID: "po1.txt"})

	require.NoError(t, err)
	descriptors, err := conn.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, descriptors)
	_, err = os.Stat(filepath.Join(dir, "po1.txt.meta.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestConnector_Watch_SignalsAfterSettle(t *testing.T) {
	conn, dir := newTestConnector(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := conn.Watch(ctx)
	require.NoError(t, err)

	writeDoc(t, dir, "po1.txt", "content")

	select {
	case _, ok := <-events:
		assert.True(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("no watch signal after document arrived")
	}
}

func TestConnector_Open_CancelledContext(t *testing.T) {
	conn, dir := newTestConnector(t)
	writeDoc(t, dir, "po1.txt", "content")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := conn.Open(ctx, domain.Descriptor{Location: filepath.Join(dir, "po1.txt")})

	assert.ErrorIs(t, err, context.Canceled)
}
