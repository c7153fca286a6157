// Package storage manages the certificate archive areas on local disk.
// A certificate moves inbox -> annotated -> printed (or review) over its
// lifetime; the original lands in the source archive once handled.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// certExtensions are the file types accepted from the inbox.
var certExtensions = map[string]struct{}{
	".pdf": {}, ".jpg": {}, ".jpeg": {}, ".png": {}, ".tiff": {}, ".bmp": {},
}

// Archive owns the working folders a certificate moves through.
type Archive struct {
	Inbox     string
	Source    string
	Annotated string
	Printed   string
	Review    string
}

// Config names the folders relative to a base directory.
type Config struct {
	BaseDir   string
	Inbox     string
	Source    string
	Annotated string
	Printed   string
	Review    string
}

// New resolves the folder layout and creates any missing directories.
func New(cfg Config) (*Archive, error) {
	a := &Archive{
		Inbox:     filepath.Join(cfg.BaseDir, cfg.Inbox),
		Source:    filepath.Join(cfg.BaseDir, cfg.Source),
		Annotated: filepath.Join(cfg.BaseDir, cfg.Annotated),
		Printed:   filepath.Join(cfg.BaseDir, cfg.Printed),
		Review:    filepath.Join(cfg.BaseDir, cfg.Review),
	}
	for _, dir := range []string{a.Inbox, a.Source, a.Annotated, a.Printed, a.Review} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create archive dir %s: %w", dir, err)
		}
	}
	return a, nil
}

// ListInbox returns the certificate files waiting in the inbox.
func (a *Archive) ListInbox() ([]string, error) {
	entries, err := os.ReadDir(a.Inbox)
	if err != nil {
		return nil, fmt.Errorf("read inbox: %w", err)
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if _, ok := certExtensions[ext]; ok {
			files = append(files, filepath.Join(a.Inbox, entry.Name()))
		}
	}
	return files, nil
}

// SaveAnnotated copies a certificate into the annotated area and returns
// the copy's path. The original stays where it is until archived.
func (a *Archive) SaveAnnotated(src string) (string, error) {
	dst := filepath.Join(a.Annotated, filepath.Base(src))
	if err := copyFile(src, dst); err != nil {
		return "", fmt.Errorf("save annotated copy: %w", err)
	}
	return dst, nil
}

// MoveToPrinted moves an annotated certificate into the printed archive.
func (a *Archive) MoveToPrinted(path string) (string, error) {
	return moveInto(path, a.Printed)
}

// MoveToReview parks an annotated certificate for manual review.
func (a *Archive) MoveToReview(path string) (string, error) {
	return moveInto(path, a.Review)
}

// ArchiveSource moves a handled original into the source archive.
func (a *Archive) ArchiveSource(path string) (string, error) {
	return moveInto(path, a.Source)
}

func moveInto(path, dir string) (string, error) {
	dst := filepath.Join(dir, filepath.Base(path))
	if err := os.Rename(path, dst); err == nil {
		return dst, nil
	}
	// Rename fails across filesystems; fall back to copy and remove.
	if err := copyFile(path, dst); err != nil {
		return "", fmt.Errorf("move %s: %w", path, err)
	}
	if err := os.Remove(path); err != nil {
		return "", fmt.Errorf("remove after move %s: %w", path, err)
	}
	return dst, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
