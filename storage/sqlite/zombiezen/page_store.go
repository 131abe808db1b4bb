package zombiezen

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/revelaction/wikidict/entry"
	"github.com/revelaction/wikidict/storage"
)

type PageStore struct {
	pool *sqlitex.Pool
}

var _ storage.PageRepository = (*PageStore)(nil)

func NewPageStore(pool *sqlitex.Pool) *PageStore {
	return &PageStore{pool: pool}
}

func (s *PageStore) List(pattern string) ([]string, error) {
	conn, err := s.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer s.pool.Put(conn)

	query := "SELECT headword FROM pages ORDER BY headword"
	var args []interface{}
	if pattern != "" {
		query = "SELECT headword FROM pages WHERE headword LIKE ? ORDER BY headword"
		args = append(args, "%"+pattern+"%")
	}

	var headwords []string
	err = sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
		Args: args,
		ResultFunc: func(stmt *sqlite.Stmt) error {
			headwords = append(headwords, stmt.ColumnText(0))
			return nil
		},
	})
	if err != nil {
		return nil, err
	}

	return headwords, nil
}

func (s *PageStore) Read(headword string) (*entry.Page, error) {
	conn, err := s.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer s.pool.Put(conn)

	var p *entry.Page
	err = sqlitex.Execute(conn, "SELECT data FROM pages WHERE headword = ?", &sqlitex.ExecOptions{
		Args: []interface{}{headword},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			var page entry.Page
			if err := json.Unmarshal([]byte(stmt.ColumnText(0)), &page); err != nil {
				return err
			}
			p = &page
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("page not found: %s", headword)
	}

	return p, nil
}

// FindTranslations pages through the reverse index by page id. The
// returned cursor is the highest page id seen; pass it back to resume.
func (s *PageStore) FindTranslations(lang, term string, after storage.Cursor, limit int, onPage func(*entry.Page) error) (storage.Cursor, error) {
	conn, err := s.pool.Take(context.TODO())
	if err != nil {
		return after, err
	}
	defer s.pool.Put(conn)

	query := "SELECT DISTINCT page_id FROM translations WHERE term = ? AND page_id > ?"
	args := []interface{}{term, after}
	if lang != "" {
		query = "SELECT DISTINCT page_id FROM translations WHERE term = ? AND lang = ? AND page_id > ?"
		args = []interface{}{term, lang, after}
	}
	query += " ORDER BY page_id LIMIT ?"
	args = append(args, limit)

	var pageIDs []int64
	err = sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
		Args: args,
		ResultFunc: func(stmt *sqlite.Stmt) error {
			pageIDs = append(pageIDs, stmt.ColumnInt64(0))
			return nil
		},
	})
	if err != nil {
		return after, err
	}

	if len(pageIDs) == 0 {
		return after, nil
	}

	idStrings := make([]string, len(pageIDs))
	for i, id := range pageIDs {
		idStrings[i] = strconv.FormatInt(id, 10)
	}

	newCursor := after
	query = fmt.Sprintf("SELECT id, data FROM pages WHERE id IN (%s) ORDER BY id", strings.Join(idStrings, ","))
	err = sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			id := stmt.ColumnInt64(0)
			if storage.Cursor(id) > newCursor {
				newCursor = storage.Cursor(id)
			}

			var p entry.Page
			if err := json.Unmarshal([]byte(stmt.ColumnText(1)), &p); err != nil {
				return err
			}
			return onPage(&p)
		},
	})
	if err != nil {
		return after, err
	}

	return newCursor, nil
}

func (s *PageStore) Write(p *entry.Page) (err error) {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}

	conn, err := s.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer s.pool.Put(conn)

	defer sqlitex.Save(conn)(&err)

	// replace any previous version of the headword
	err = sqlitex.Execute(conn, "DELETE FROM translations WHERE page_id IN (SELECT id FROM pages WHERE headword = ?)", &sqlitex.ExecOptions{
		Args: []interface{}{p.Headword},
	})
	if err != nil {
		return fmt.Errorf("failed to clear translation index: %w", err)
	}

	err = sqlitex.Execute(conn, "DELETE FROM pages WHERE headword = ?", &sqlitex.ExecOptions{
		Args: []interface{}{p.Headword},
	})
	if err != nil {
		return fmt.Errorf("failed to replace page: %w", err)
	}

	err = sqlitex.Execute(conn, "INSERT INTO pages (headword, data) VALUES (?, ?)", &sqlitex.ExecOptions{
		Args: []interface{}{p.Headword, string(data)},
	})
	if err != nil {
		return fmt.Errorf("failed to insert page: %w", err)
	}
	pageID := conn.LastInsertRowID()

	type indexKey struct {
		lang, term string
	}
	unique := make(map[indexKey]bool)
	for _, sec := range p.Languages {
		for _, blk := range sec.Blocks {
			for _, sense := range blk.Senses {
				for _, tr := range sense.Translations {
					unique[indexKey{tr.Lang, tr.Term}] = true
				}
			}
		}
	}

	for key := range unique {
		err = sqlitex.Execute(conn, "INSERT INTO translations (page_id, lang, term) VALUES (?, ?, ?)", &sqlitex.ExecOptions{
			Args: []interface{}{pageID, key.lang, key.term},
		})
		if err != nil {
			return fmt.Errorf("failed to insert translation index: %w", err)
		}
	}

	return nil
}
