// Package postgres reads game data kept in a postgres database.
package postgres

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/jackc/pgx/v5"
)

// DefaultTable holds one dictionary word per row in a "word" column.
const DefaultTable = "dictionary"

// Querier is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

var _ Querier = (pgx.Tx)(nil)

// DictionarySource streams the words of a table as newline delimited text,
// so it can feed the same loader as a file or URL.
type DictionarySource struct {
	db    Querier
	table string
}

func NewDictionarySource(db Querier, table string) *DictionarySource {
	if table == "" {
		table = DefaultTable
	}
	return &DictionarySource{db: db, table: table}
}

func (s *DictionarySource) query() string {
	return fmt.Sprintf("SELECT word FROM %s WHERE word <> ''", pgx.Identifier{s.table}.Sanitize())
}

// Open runs the query and returns a reader over its rows.
// Closing the reader early stops the scan.
func (s *DictionarySource) Open(ctx context.Context) (io.ReadCloser, error) {
	rows, err := s.db.Query(ctx, s.query())
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", s.table, err)
	}

	pr, pw := io.Pipe()
	go func() {
		defer rows.Close()
		bw := bufio.NewWriter(pw)
		var w string
		for rows.Next() {
			if err := rows.Scan(&w); err != nil {
				pw.CloseWithError(err)
				return
			}
			if _, err := bw.WriteString(w + "\n"); err != nil {
				pw.CloseWithError(err)
				return
			}
		}
		if err := rows.Err(); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(bw.Flush())
	}()
	return pr, nil
}

func (s *DictionarySource) String() string {
	return "postgres table " + s.table
}
