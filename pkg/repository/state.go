package repository

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/go-pkgz/repeater/v2"

	"github.com/umputun/newsdigest/pkg/domain"
)

// scoreSQL is the scores row
type scoreSQL struct {
	ItemID string `db:"item_id"`
	Score  int    `db:"score"`
}

// historySQL is the history row
type historySQL struct {
	Source       string    `db:"source"`
	Position     int       `db:"position"`
	ItemID       string    `db:"item_id"`
	Title        string    `db:"title"`
	Link         string    `db:"link"`
	CommentsLink string    `db:"comments_link"`
	Score        int       `db:"score"`
	Comments     int       `db:"comments"`
	Content      string    `db:"content"`
	PublishedAt  time.Time `db:"published_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// runSQL is the runs row
type runSQL struct {
	StartedAt  time.Time `db:"started_at"`
	FinishedAt time.Time `db:"finished_at"`
	Scanned    int       `db:"scanned"`
	Crossed    int       `db:"crossed"`
	Selected   int       `db:"selected"`
	Published  int       `db:"published"`
	Failed     int       `db:"failed"`
	Evicted    int       `db:"evicted"`
}

// pageSQL is the pages row
type pageSQL struct {
	Idx     int    `db:"idx"`
	Name    string `db:"name"`
	Body    []byte `db:"body"`
	Entries int    `db:"entries"`
}

// Load reads the committed state of the source. First run gives an empty state.
// Broken history positions or history entries missing from the ledger are reported
// as domain.ErrStateCorrupt.
func (s *Store) Load(ctx context.Context) (*domain.State, error) {
	res := domain.NewState()

	var scores []scoreSQL
	if err := s.selectSQ(ctx, &scores, sq.Select("item_id", "score").From("scores").
		Where(sq.Eq{"source": s.source})); err != nil {
		return nil, fmt.Errorf("load scores: %w", err)
	}
	for _, sc := range scores {
		res.Scores[sc.ItemID] = sc.Score
	}

	var ledger []string
	if err := s.selectSQ(ctx, &ledger, sq.Select("item_id").From("ledger").
		Where(sq.Eq{"source": s.source})); err != nil {
		return nil, fmt.Errorf("load ledger: %w", err)
	}
	for _, id := range ledger {
		res.Published[id] = true
	}

	var history []historySQL
	if err := s.selectSQ(ctx, &history, sq.Select("position", "item_id", "title", "link", "comments_link",
		"score", "comments", "content", "published_at", "updated_at").From("history").
		Where(sq.Eq{"source": s.source}).OrderBy("position")); err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}

	seen := make(map[string]bool, len(history))
	res.History = make([]domain.Entry, 0, len(history))
	for i, h := range history {
		if h.Position != i {
			return nil, fmt.Errorf("%w: history position %d at %d", domain.ErrStateCorrupt, h.Position, i)
		}
		if !res.Published[h.ItemID] {
			return nil, fmt.Errorf("%w: history entry %s not in ledger", domain.ErrStateCorrupt, h.ItemID)
		}
		if seen[h.ItemID] {
			return nil, fmt.Errorf("%w: duplicate history entry %s", domain.ErrStateCorrupt, h.ItemID)
		}
		seen[h.ItemID] = true
		res.History = append(res.History, toDomainEntry(h))
	}

	return res, nil
}

// Documents returns committed pages of the source, index 0 first
func (s *Store) Documents(ctx context.Context) ([]domain.Document, error) {
	var pages []pageSQL
	if err := s.selectSQ(ctx, &pages, sq.Select("idx", "name", "body", "entries").From("pages").
		Where(sq.Eq{"source": s.source}).OrderBy("idx")); err != nil {
		return nil, fmt.Errorf("load pages: %w", err)
	}

	res := make([]domain.Document, 0, len(pages))
	for i, p := range pages {
		if p.Idx != i {
			return nil, fmt.Errorf("%w: page index %d at %d", domain.ErrStateCorrupt, p.Idx, i)
		}
		res = append(res, domain.Document{Index: p.Idx, Name: p.Name, Body: p.Body, Entries: p.Entries})
	}
	return res, nil
}

// LastRun returns stats of the most recent run, nil if none
func (s *Store) LastRun(ctx context.Context) (*domain.RunStats, error) {
	var runs []runSQL
	if err := s.selectSQ(ctx, &runs, sq.Select("started_at", "finished_at",
		"scanned", "crossed", "selected", "published", "failed", "evicted").From("runs").
		Where(sq.Eq{"source": s.source}).OrderBy("id DESC").Limit(1)); err != nil {
		return nil, fmt.Errorf("load last run: %w", err)
	}
	if len(runs) == 0 {
		return nil, nil
	}
	r := runs[0]
	return &domain.RunStats{StartedAt: r.StartedAt.UTC(), FinishedAt: r.FinishedAt.UTC(), Scanned: r.Scanned,
		Crossed: r.Crossed, Selected: r.Selected, Published: r.Published, Failed: r.Failed, Evicted: r.Evicted}, nil
}

// Commit applies all mutations of a run in a single transaction: score updates, ledger
// additions, full history replacement, rendered pages and run stats. Nothing is visible
// unless everything is. Lock errors are retried.
func (s *Store) Commit(ctx context.Context, c domain.Commit) error {
	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))
	err := retrier.Do(ctx, func() error {
		err := s.commitTx(ctx, c)
		if err == nil || isLockError(err) {
			return err // repeater will retry lock errors
		}
		return &criticalError{err: err}
	}, errCritical)
	if err != nil {
		return fmt.Errorf("commit state: %w", err)
	}
	return nil
}

func (s *Store) commitTx(ctx context.Context, c domain.Commit) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	now := time.Now().UTC()

	if len(c.Scores) > 0 {
		stmt, err := tx.PreparexContext(ctx, `
			INSERT INTO scores (source, item_id, score, updated_at) VALUES (?, ?, ?, ?)
			ON CONFLICT(source, item_id) DO UPDATE SET score = excluded.score, updated_at = excluded.updated_at`)
		if err != nil {
			return fmt.Errorf("prepare scores: %w", err)
		}
		defer stmt.Close()
		for id, score := range c.Scores {
			if _, err := stmt.ExecContext(ctx, s.source, id, score, now); err != nil {
				return fmt.Errorf("upsert score %s: %w", id, err)
			}
		}
	}

	if len(c.Published) > 0 {
		stmt, err := tx.PreparexContext(ctx, `INSERT OR IGNORE INTO ledger (source, item_id, published_at) VALUES (?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("prepare ledger: %w", err)
		}
		defer stmt.Close()
		for _, id := range c.Published {
			if _, err := stmt.ExecContext(ctx, s.source, id, now); err != nil {
				return fmt.Errorf("add %s to ledger: %w", id, err)
			}
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM history WHERE source = ?`, s.source); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	if len(c.History) > 0 {
		rows := make([]historySQL, 0, len(c.History))
		for i, e := range c.History {
			rows = append(rows, historySQL{Source: s.source, Position: i, ItemID: e.ID, Title: e.Title, Link: e.Link,
				CommentsLink: e.CommentsLink, Score: e.Score, Comments: e.Comments, Content: e.Content,
				PublishedAt: e.PublishedAt.UTC(), UpdatedAt: e.UpdatedAt.UTC()})
		}
		_, err := tx.NamedExecContext(ctx, `INSERT INTO history (source, position, item_id, title, link,
			comments_link, score, comments, content, published_at, updated_at) VALUES (:source, :position, :item_id,
			:title, :link, :comments_link, :score, :comments, :content, :published_at, :updated_at)`, rows)
		if err != nil {
			return fmt.Errorf("write history: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM pages WHERE source = ? AND idx >= ?`, s.source, len(c.Documents)); err != nil {
		return fmt.Errorf("drop stale pages: %w", err)
	}
	for _, doc := range c.Documents {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO pages (source, idx, name, body, entries) VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(source, idx) DO UPDATE SET name = excluded.name, body = excluded.body, entries = excluded.entries`,
			s.source, doc.Index, doc.Name, doc.Body, doc.Entries)
		if err != nil {
			return fmt.Errorf("write page %d: %w", doc.Index, err)
		}
	}

	r := c.Run
	_, err = tx.ExecContext(ctx, `INSERT INTO runs (source, started_at, finished_at, scanned, crossed, selected,
		published, failed, evicted) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`, s.source, r.StartedAt.UTC(), r.FinishedAt.UTC(),
		r.Scanned, r.Crossed, r.Selected, r.Published, r.Failed, r.Evicted)
	if err != nil {
		return fmt.Errorf("write run stats: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// selectSQ runs a squirrel select into dest
func (s *Store) selectSQ(ctx context.Context, dest any, q sq.SelectBuilder) error {
	query, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	return s.db.SelectContext(ctx, dest, query, args...)
}

// toDomainEntry converts historySQL to domain.Entry
func toDomainEntry(h historySQL) domain.Entry {
	return domain.Entry{
		ID:           h.ItemID,
		Title:        h.Title,
		Link:         h.Link,
		CommentsLink: h.CommentsLink,
		Score:        h.Score,
		Comments:     h.Comments,
		Content:      h.Content,
		PublishedAt:  h.PublishedAt.UTC(),
		UpdatedAt:    h.UpdatedAt.UTC(),
	}
}
