package invoice

import (
	"os"
	"path/filepath"

	"github.com/example/birchwood/internal/apperr"
)

// Store persists rendered invoice PDFs on disk, keyed by invoice number.
// The public URL convention is /invoices/{number}.pdf.
type Store struct {
	dir string
}

// NewStore constructs a Store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Save writes the PDF bytes for the given invoice number, creating the
// containing directory if absent, and returns the file path.
func (s *Store) Save(data []byte, number string) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", apperr.NewStorage("mkdir", err)
	}

	path := s.Path(number)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", apperr.NewStorage("write", err)
	}
	return path, nil
}

// Exists reports whether a PDF has been stored for the invoice number.
func (s *Store) Exists(number string) bool {
	_, err := os.Stat(s.Path(number))
	return err == nil
}

// Delete removes the stored PDF. Deleting a missing file is not an error.
func (s *Store) Delete(number string) error {
	if err := os.Remove(s.Path(number)); err != nil && !os.IsNotExist(err) {
		return apperr.NewStorage("delete", err)
	}
	return nil
}

// Path returns the on-disk location for the invoice number.
func (s *Store) Path(number string) string {
	return filepath.Join(s.dir, number+".pdf")
}

// PublicURL returns the URL path the HTTP layer serves the PDF under.
func PublicURL(number string) string {
	return "/invoices/" + number + ".pdf"
}
