package postgres

import (
	"context"
	"fmt"

	"codeflix-catalog/internal/core/domain"
	"codeflix-catalog/internal/core/port"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const (
	categoriesTable  = "categories"
	genresTable      = "genres"
	castMembersTable = "cast_members"
)

type sqlCatalogRepository struct {
	db    SQLQuerier
	table string
}

// NewSqlCategoryRepository creates a port.CatalogRepository over categories
func NewSqlCategoryRepository(db SQLQuerier) port.CatalogRepository {
	return &sqlCatalogRepository{db: db, table: categoriesTable}
}

// NewSqlGenreRepository creates a port.CatalogRepository over genres
func NewSqlGenreRepository(db SQLQuerier) port.CatalogRepository {
	return &sqlCatalogRepository{db: db, table: genresTable}
}

// NewSqlCastMemberRepository creates a port.CatalogRepository over cast members
func NewSqlCastMemberRepository(db SQLQuerier) port.CatalogRepository {
	return &sqlCatalogRepository{db: db, table: castMembersTable}
}

// FindExistingIDs returns the subset of ids present in the table, in a single query
func (s *sqlCatalogRepository) FindExistingIDs(ctx context.Context, ids []uuid.UUID) (domain.IDSet, error) {
	if len(ids) == 0 {
		return domain.IDSet{}, nil
	}

	query := fmt.Sprintf("SELECT id FROM %s WHERE id = ANY($1::uuid[])", s.table)

	rows, err := s.db.QueryContext(ctx, query, pq.Array(uuidStrings(ids)))
	if err != nil {
		return nil, fmt.Errorf("error querying %s: %w", s.table, err)
	}
	defer rows.Close()

	found := domain.IDSet{}
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning %s: %w", s.table, err)
		}
		found[id] = struct{}{}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s: %w", s.table, err)
	}

	return found, nil
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
