package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Store is the blob storage collaborator for uploaded logos and
// screenshots: accept bytes under a name, hand back a stable public URL.
type Store interface {
	Upload(name string, r io.Reader) error
	PublicURL(name string) string
}

// Disk stores blobs in a local directory served under /uploads/.
type Disk struct {
	root    string
	baseURL string
}

func NewDisk(root, baseURL string) (*Disk, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Disk{root: root, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (d *Disk) Upload(name string, r io.Reader) error {
	// Names are generated server-side; Base guards against traversal anyway.
	dst := filepath.Join(d.root, filepath.Base(name))
	f, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create blob: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(dst)
		return fmt.Errorf("write blob: %w", err)
	}
	return nil
}

func (d *Disk) PublicURL(name string) string {
	return d.baseURL + "/uploads/" + filepath.Base(name)
}

// Root returns the directory backing the store, for the file server.
func (d *Disk) Root() string {
	return d.root
}
