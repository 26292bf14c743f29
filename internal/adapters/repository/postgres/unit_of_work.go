package postgres

import (
	"context"
	"database/sql"

	"codeflix-catalog/internal/core/port"
)

type sqlUnitOfWork struct {
	db *sql.DB
	tx *sql.Tx
}

func NewUnitOfWork(db *sql.DB) port.UnitOfWork {
	return &sqlUnitOfWork{db: db}
}

func (u *sqlUnitOfWork) querier() SQLQuerier {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *sqlUnitOfWork) VideoRepo() port.VideoRepository {
	return NewSqlVideoRepository(u.querier())
}

func (u *sqlUnitOfWork) CategoryRepo() port.CatalogRepository {
	return NewSqlCategoryRepository(u.querier())
}

func (u *sqlUnitOfWork) GenreRepo() port.CatalogRepository {
	return NewSqlGenreRepository(u.querier())
}

func (u *sqlUnitOfWork) CastMemberRepo() port.CatalogRepository {
	return NewSqlCastMemberRepository(u.querier())
}

func (u *sqlUnitOfWork) Execute(ctx context.Context, fn func(uow port.UnitOfWork) error) error {
	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	uowWithTx := &sqlUnitOfWork{db: u.db, tx: tx}

	if err := fn(uowWithTx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}
