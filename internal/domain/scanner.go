package domain

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"sort"
	"strings"

	"mklinkdef.dev/pkg/mklinkdef/internal/adapter"
	m "mklinkdef.dev/pkg/mklinkdef/internal/model"
)

// Scanner lists the headers a descriptor is generated for.
type Scanner interface {
	Scan(dir m.Path) ([]m.HeaderFile, error)
}

type scanner struct {
	fsAdapter adapter.SourceFSAdapter
}

// NewScanner constructs a Scanner backed by the filesystem adapter.
func NewScanner(fsAdapter adapter.SourceFSAdapter) Scanner {
	return &scanner{fsAdapter: fsAdapter}
}

// Scan returns the headers in dir sorted by filename. The descriptor itself
// is skipped even when it lives in dir.
func (s *scanner) Scan(dir m.Path) ([]m.HeaderFile, error) {
	names, err := s.fsAdapter.ListFiles(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrHeaderDirMissing, dir)
		}

		slog.Error("Failed to list header directory", "dir", dir, "error", err)

		return nil, fmt.Errorf("failed to list header directory: %w", err)
	}

	sort.Strings(names)

	headers := make([]m.HeaderFile, 0, len(names))
	for _, name := range names {
		if !IsHeader(name) {
			continue
		}

		headers = append(headers, m.HeaderFile{Name: name})
	}

	slog.Debug("scanned headers", "dir", dir, "entries", len(names), "headers", len(headers))

	return headers, nil
}

// IsHeader reports whether a directory entry belongs in the descriptor.
func IsHeader(name string) bool {
	return strings.HasSuffix(name, m.HeaderExt) && name != m.DescriptorFileName
}
