package storage_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aelshamy/cert-print-agent/pkg/storage"
)

func newArchive(t *testing.T) *storage.Archive {
	t.Helper()
	a, err := storage.New(storage.Config{
		BaseDir:   t.TempDir(),
		Inbox:     "Cert_Inbox",
		Source:    "Source_Archive",
		Annotated: "Annotated",
		Printed:   "Printed",
		Review:    "Manual_Review",
	})
	require.NoError(t, err)
	return a
}

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("content"), 0o644))
}

func TestNew_CreatesAllAreas(t *testing.T) {
	a := newArchive(t)
	for _, dir := range []string{a.Inbox, a.Source, a.Annotated, a.Printed, a.Review} {
		assert.DirExists(t, dir)
	}
}

func TestListInbox_FiltersByExtension(t *testing.T) {
	a := newArchive(t)
	touch(t, filepath.Join(a.Inbox, "cert1.pdf"))
	touch(t, filepath.Join(a.Inbox, "scan.JPG"))
	touch(t, filepath.Join(a.Inbox, "photo.png"))
	touch(t, filepath.Join(a.Inbox, "notes.txt"))
	touch(t, filepath.Join(a.Inbox, "dump_ocr.json"))
	require.NoError(t, os.Mkdir(filepath.Join(a.Inbox, "subdir.pdf"), 0o755))

	files, err := a.ListInbox()
	require.NoError(t, err)
	require.Len(t, files, 3)
	for _, f := range files {
		assert.Equal(t, a.Inbox, filepath.Dir(f))
	}
}

func TestSaveAnnotated_CopiesAndKeepsOriginal(t *testing.T) {
	a := newArchive(t)
	src := filepath.Join(a.Inbox, "cert1.pdf")
	touch(t, src)

	dst, err := a.SaveAnnotated(src)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(a.Annotated, "cert1.pdf"), dst)
	assert.FileExists(t, dst)
	assert.FileExists(t, src)
}

func TestMoves(t *testing.T) {
	a := newArchive(t)

	tests := []struct {
		name string
		move func(string) (string, error)
		dir  string
	}{
		{"printed", a.MoveToPrinted, a.Printed},
		{"review", a.MoveToReview, a.Review},
		{"source", a.ArchiveSource, a.Source},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := filepath.Join(a.Annotated, tt.name+".pdf")
			touch(t, src)

			dst, err := tt.move(src)
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(tt.dir, tt.name+".pdf"), dst)
			assert.FileExists(t, dst)
			assert.NoFileExists(t, src)
		})
	}
}

func TestMove_MissingSource(t *testing.T) {
	a := newArchive(t)
	_, err := a.MoveToPrinted(filepath.Join(a.Annotated, "absent.pdf"))
	assert.Error(t, err)
}
