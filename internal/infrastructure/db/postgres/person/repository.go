package person

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"person-registry-api/internal/domain/person"
	"person-registry-api/internal/infrastructure/db/postgres"
)

// DB is the subset of *pgxpool.Pool the repository needs.
type DB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Repository struct {
	db DB
}

func NewRepository(db DB) person.Repository {
	return &Repository{db: db}
}

func (r *Repository) FetchPersons(ctx context.Context, page, size int) (*person.Page, error) {
	out := &person.Page{
		Persons: person.Persons{},
		Number:  page,
		Size:    size,
	}

	if err := r.db.QueryRow(ctx, CountPersons).Scan(&out.Total); err != nil {
		return nil, err
	}
	if out.Total == 0 {
		return out, nil
	}

	rows, err := r.db.Query(ctx, SelectPersons, size, page*size)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ps Persons
	ids := make([]int64, 0, size)
	for rows.Next() {
		p := new(Person)

		if err = rows.Scan(
			&p.ID,
			&p.Name,
			&p.DateOfBirth,
			&p.CPF,

			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			return nil, err
		}

		ps = append(ps, p)
		ids = append(ids, p.ID)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	if len(ps) == 0 {
		return out, nil
	}

	as, err := fetchAddresses(ctx, r.db, ids)
	if err != nil {
		return nil, err
	}

	out.Persons = fromDBModels(ps, as)

	return out, nil
}

func (r *Repository) FetchPersonByID(ctx context.Context, id person.ID) (*person.Person, error) {
	p := new(Person)
	err := r.db.QueryRow(ctx, SelectPersonByID, int64(id)).Scan(
		&p.ID,
		&p.Name,
		&p.DateOfBirth,
		&p.CPF,

		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	as, err := fetchAddresses(ctx, r.db, []int64{p.ID})
	if err != nil {
		return nil, err
	}

	return fromDBModel(p, as), nil
}

func (r *Repository) ExistsByCPF(ctx context.Context, cpf string) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, ExistsPersonByCPF, person.NormalizeCPF(cpf)).Scan(&exists); err != nil {
		return false, err
	}

	return exists, nil
}

// CreatePerson inserts the person and its addresses in one transaction.
func (r *Repository) CreatePerson(ctx context.Context, req person.Person) (*person.Person, error) {
	var out *person.Person

	err := r.inTx(ctx, func(tx pgx.Tx) error {
		p := new(Person)
		if err := tx.QueryRow(
			ctx,
			InsertPerson,
			req.Name, req.DateOfBirth, req.CPF, person.NormalizeCPF(req.CPF),
		).Scan(
			&p.ID,
			&p.Name,
			&p.DateOfBirth,
			&p.CPF,

			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			return err
		}

		as, err := insertAddresses(ctx, tx, p.ID, req.Addresses)
		if err != nil {
			return err
		}

		out = fromDBModel(p, as)
		return nil
	})
	if err != nil {
		if postgres.IsPgUniqueViolation(err) {
			return nil, person.ErrCPFAlreadyExists
		}
		return nil, err
	}

	return out, nil
}

// UpdatePerson rewrites the person row and replaces its whole address set.
// Returns (nil, nil) when no person has req.ID.
func (r *Repository) UpdatePerson(ctx context.Context, req person.Person) (*person.Person, error) {
	var out *person.Person

	err := r.inTx(ctx, func(tx pgx.Tx) error {
		p := new(Person)
		if err := tx.QueryRow(
			ctx,
			UpdatePersonByID,
			req.Name, req.DateOfBirth, req.CPF, person.NormalizeCPF(req.CPF), int64(req.ID),
		).Scan(
			&p.ID,
			&p.Name,
			&p.DateOfBirth,
			&p.CPF,

			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, DeleteAddressesByPersonID, p.ID); err != nil {
			return err
		}

		as, err := insertAddresses(ctx, tx, p.ID, req.Addresses)
		if err != nil {
			return err
		}

		out = fromDBModel(p, as)
		return nil
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		if postgres.IsPgUniqueViolation(err) {
			return nil, person.ErrCPFAlreadyExists
		}
		return nil, err
	}

	return out, nil
}

// DeletePerson reports false when there was nothing to delete.
// Addresses are removed by the ON DELETE CASCADE foreign key.
func (r *Repository) DeletePerson(ctx context.Context, id person.ID) (bool, error) {
	var deleted int64
	if err := r.db.QueryRow(ctx, DeletePersonByID, int64(id)).Scan(&deleted); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}

func (r *Repository) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	if err = fn(tx); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}

	return tx.Commit(ctx)
}

func fetchAddresses(ctx context.Context, q querier, personIDs []int64) (Addresses, error) {
	rows, err := q.Query(ctx, SelectAddressesByPersonIDs, personIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var as Addresses
	for rows.Next() {
		a := new(Address)
		if err = rows.Scan(
			&a.ID,
			&a.PersonID,
			&a.Street,
			&a.Number,
			&a.Neighborhood,
			&a.City,
			&a.State,
			&a.ZipCode,
		); err != nil {
			return nil, err
		}

		as = append(as, a)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return as, nil
}

func insertAddresses(ctx context.Context, q querier, personID int64, req person.Addresses) (Addresses, error) {
	as := make(Addresses, 0, len(req))
	for _, in := range req {
		a := new(Address)
		if err := q.QueryRow(
			ctx,
			InsertAddress,
			personID, in.Street, in.Number, in.Neighborhood, in.City, in.State, in.ZipCode,
		).Scan(
			&a.ID,
			&a.PersonID,
			&a.Street,
			&a.Number,
			&a.Neighborhood,
			&a.City,
			&a.State,
			&a.ZipCode,
		); err != nil {
			return nil, err
		}

		as = append(as, a)
	}

	return as, nil
}
