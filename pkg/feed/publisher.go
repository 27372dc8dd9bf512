package feed

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/go-pkgz/lgr"

	"github.com/umputun/newsdigest/pkg/domain"
)

// Publisher writes committed documents to the output directory
type Publisher struct {
	dir string
}

// NewPublisher makes a publisher writing into dir
func NewPublisher(dir string) *Publisher {
	return &Publisher{dir: dir}
}

// Publish writes every document atomically (temp file + rename) and removes archive pages
// with index beyond the current page count
func (p *Publisher) Publish(ctx context.Context, docs []domain.Document) error {
	if err := os.MkdirAll(p.dir, 0o750); err != nil {
		return fmt.Errorf("create output dir %s: %w", p.dir, err)
	}

	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("publish canceled: %w", err)
		}
		if err := p.write(doc); err != nil {
			return err
		}
		lgr.Printf("[DEBUG] published %s, %d entries, %s", doc.Name, doc.Entries, humanize.Bytes(uint64(len(doc.Body))))
	}

	removed, err := p.removeStale(len(docs))
	if err != nil {
		return err
	}
	if removed > 0 {
		lgr.Printf("[INFO] removed %d stale feed pages", removed)
	}
	return nil
}

func (p *Publisher) write(doc domain.Document) error {
	tmp, err := os.CreateTemp(p.dir, "."+doc.Name+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file for %s: %w", doc.Name, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after successful rename

	if _, err := tmp.Write(doc.Body); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", doc.Name, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync %s: %w", doc.Name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", doc.Name, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil { //nolint:gosec // feed documents are public
		return fmt.Errorf("chmod %s: %w", doc.Name, err)
	}
	if err := os.Rename(tmpName, filepath.Join(p.dir, doc.Name)); err != nil {
		return fmt.Errorf("rename %s: %w", doc.Name, err)
	}
	return nil
}

// removeStale deletes feed-N.xml files with N >= count
func (p *Publisher) removeStale(count int) (int, error) {
	matches, err := filepath.Glob(filepath.Join(p.dir, "feed-*.xml"))
	if err != nil {
		return 0, fmt.Errorf("list feed pages: %w", err)
	}

	removed := 0
	for _, path := range matches {
		name := strings.TrimSuffix(strings.TrimPrefix(filepath.Base(path), "feed-"), ".xml")
		idx, err := strconv.Atoi(name)
		if err != nil || idx < 1 || idx < count {
			continue
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return removed, fmt.Errorf("remove stale page %s: %w", path, err)
		}
		removed++
	}
	return removed, nil
}
