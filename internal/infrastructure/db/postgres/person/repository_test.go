package person

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"person-registry-api/internal/domain/person"
)

var (
	personCols  = []string{"id", "name", "date_of_birth", "cpf", "created_at", "updated_at"}
	addressCols = []string{"id", "person_id", "street", "number", "neighborhood", "city", "state", "zip_code"}
	dob         = time.Date(1994, time.September, 24, 0, 0, 0, 0, time.UTC)
	stamp       = time.Date(2026, time.October, 1, 12, 0, 0, 0, time.UTC)
)

func q(sql string) string { return regexp.QuoteMeta(sql) }

func newMock(t *testing.T) (pgxmock.PgxPoolIface, person.Repository) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return mock, NewRepository(mock)
}

func someDomainPerson() person.Person {
	return person.Person{
		Name:        "Josias Barreto",
		DateOfBirth: dob,
		CPF:         "128.363.000-19",
		Addresses: person.Addresses{
			{
				Street:       "Avenida X",
				Number:       "178-A",
				Neighborhood: "Parque Guarus",
				City:         "Campos dos Goytacazes",
				State:        "RJ",
				ZipCode:      "28143-000",
			},
		},
	}
}

func TestRepository_FetchPersonByID(t *testing.T) {
	t.Run("found with addresses", func(t *testing.T) {
		mock, repo := newMock(t)

		mock.ExpectQuery(q(SelectPersonByID)).
			WithArgs(int64(1)).
			WillReturnRows(pgxmock.NewRows(personCols).
				AddRow(int64(1), "Josias Barreto", dob, "128.363.000-19", stamp, stamp))
		mock.ExpectQuery(q(SelectAddressesByPersonIDs)).
			WithArgs([]int64{1}).
			WillReturnRows(pgxmock.NewRows(addressCols).
				AddRow(int64(10), int64(1), "Avenida X", "178-A", "Parque Guarus", "Campos dos Goytacazes", "RJ", "28143-000").
				AddRow(int64(11), int64(1), "Rua Y", "2", "Centro", "Niteroi", "RJ", "24020000"))

		p, err := repo.FetchPersonByID(context.Background(), 1)
		require.NoError(t, err)
		require.NotNil(t, p)
		assert.Equal(t, person.ID(1), p.ID)
		assert.Equal(t, "Josias Barreto", p.Name)
		require.Len(t, p.Addresses, 2)
		assert.Equal(t, person.ID(10), p.Addresses[0].ID)
		assert.Equal(t, person.ID(11), p.Addresses[1].ID)
		assert.Equal(t, person.ID(1), p.Addresses[1].PersonID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		mock, repo := newMock(t)

		mock.ExpectQuery(q(SelectPersonByID)).
			WithArgs(int64(2)).
			WillReturnError(pgx.ErrNoRows)

		p, err := repo.FetchPersonByID(context.Background(), 2)
		require.NoError(t, err)
		assert.Nil(t, p)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("db error", func(t *testing.T) {
		mock, repo := newMock(t)

		mock.ExpectQuery(q(SelectPersonByID)).
			WithArgs(int64(3)).
			WillReturnError(errors.New("conn reset"))

		_, err := repo.FetchPersonByID(context.Background(), 3)
		require.Error(t, err)
	})
}

func TestRepository_FetchPersons(t *testing.T) {
	t.Run("page keeps insertion order", func(t *testing.T) {
		mock, repo := newMock(t)

		mock.ExpectQuery(q(CountPersons)).
			WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(2)))
		mock.ExpectQuery(q(SelectPersons)).
			WithArgs(10, 0).
			WillReturnRows(pgxmock.NewRows(personCols).
				AddRow(int64(1), "Josias Barreto", dob, "128.363.000-19", stamp, stamp).
				AddRow(int64(2), "Maria Silva", dob, "529.982.247-25", stamp, stamp))
		mock.ExpectQuery(q(SelectAddressesByPersonIDs)).
			WithArgs([]int64{1, 2}).
			WillReturnRows(pgxmock.NewRows(addressCols).
				AddRow(int64(10), int64(1), "Avenida X", "178-A", "Parque Guarus", "Campos dos Goytacazes", "RJ", "28143-000").
				AddRow(int64(11), int64(2), "Rua Y", "2", "Centro", "Niteroi", "RJ", "24020000").
				AddRow(int64(12), int64(1), "Rua Z", "9", "Centro", "Campos dos Goytacazes", "RJ", "28010000"))

		pg, err := repo.FetchPersons(context.Background(), 0, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(2), pg.Total)
		assert.Equal(t, 0, pg.Number)
		assert.Equal(t, 10, pg.Size)
		require.Len(t, pg.Persons, 2)
		assert.Equal(t, "Josias Barreto", pg.Persons[0].Name)
		assert.Equal(t, "Maria Silva", pg.Persons[1].Name)
		require.Len(t, pg.Persons[0].Addresses, 2)
		assert.Equal(t, person.ID(12), pg.Persons[0].Addresses[1].ID)
		require.Len(t, pg.Persons[1].Addresses, 1)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty store skips row queries", func(t *testing.T) {
		mock, repo := newMock(t)

		mock.ExpectQuery(q(CountPersons)).
			WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(0)))

		pg, err := repo.FetchPersons(context.Background(), 0, 10)
		require.NoError(t, err)
		assert.Empty(t, pg.Persons)
		assert.NotNil(t, pg.Persons)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("offset is page times size", func(t *testing.T) {
		mock, repo := newMock(t)

		mock.ExpectQuery(q(CountPersons)).
			WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(7)))
		mock.ExpectQuery(q(SelectPersons)).
			WithArgs(5, 10).
			WillReturnRows(pgxmock.NewRows(personCols))

		pg, err := repo.FetchPersons(context.Background(), 2, 5)
		require.NoError(t, err)
		assert.Empty(t, pg.Persons)
		assert.Equal(t, int64(7), pg.Total)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_ExistsByCPF(t *testing.T) {
	mock, repo := newMock(t)

	mock.ExpectQuery(q(ExistsPersonByCPF)).
		WithArgs("12836300019").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := repo.ExistsByCPF(context.Background(), "128.363.000-19")
	require.NoError(t, err)
	assert.True(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CreatePerson(t *testing.T) {
	t.Run("inserts person and addresses in one tx", func(t *testing.T) {
		mock, repo := newMock(t)
		in := someDomainPerson()

		mock.ExpectBegin()
		mock.ExpectQuery(q(InsertPerson)).
			WithArgs("Josias Barreto", dob, "128.363.000-19", "12836300019").
			WillReturnRows(pgxmock.NewRows(personCols).
				AddRow(int64(5), "Josias Barreto", dob, "128.363.000-19", stamp, stamp))
		mock.ExpectQuery(q(InsertAddress)).
			WithArgs(int64(5), "Avenida X", "178-A", "Parque Guarus", "Campos dos Goytacazes", "RJ", "28143-000").
			WillReturnRows(pgxmock.NewRows(addressCols).
				AddRow(int64(50), int64(5), "Avenida X", "178-A", "Parque Guarus", "Campos dos Goytacazes", "RJ", "28143-000"))
		mock.ExpectCommit()

		p, err := repo.CreatePerson(context.Background(), in)
		require.NoError(t, err)
		assert.Equal(t, person.ID(5), p.ID)
		require.Len(t, p.Addresses, 1)
		assert.Equal(t, person.ID(50), p.Addresses[0].ID)
		assert.Equal(t, person.ID(5), p.Addresses[0].PersonID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unique violation maps to duplicate cpf", func(t *testing.T) {
		mock, repo := newMock(t)

		mock.ExpectBegin()
		mock.ExpectQuery(q(InsertPerson)).
			WithArgs("Josias Barreto", dob, "128.363.000-19", "12836300019").
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "persons_cpf_digits_key"})
		mock.ExpectRollback()

		_, err := repo.CreatePerson(context.Background(), someDomainPerson())
		require.ErrorIs(t, err, person.ErrCPFAlreadyExists)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("address insert failure rolls back", func(t *testing.T) {
		mock, repo := newMock(t)

		mock.ExpectBegin()
		mock.ExpectQuery(q(InsertPerson)).
			WithArgs("Josias Barreto", dob, "128.363.000-19", "12836300019").
			WillReturnRows(pgxmock.NewRows(personCols).
				AddRow(int64(5), "Josias Barreto", dob, "128.363.000-19", stamp, stamp))
		mock.ExpectQuery(q(InsertAddress)).
			WithArgs(int64(5), "Avenida X", "178-A", "Parque Guarus", "Campos dos Goytacazes", "RJ", "28143-000").
			WillReturnError(errors.New("value too long"))
		mock.ExpectRollback()

		_, err := repo.CreatePerson(context.Background(), someDomainPerson())
		require.Error(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_UpdatePerson(t *testing.T) {
	t.Run("replaces address set", func(t *testing.T) {
		mock, repo := newMock(t)
		in := someDomainPerson()
		in.ID = 5

		mock.ExpectBegin()
		mock.ExpectQuery(q(UpdatePersonByID)).
			WithArgs("Josias Barreto", dob, "128.363.000-19", "12836300019", int64(5)).
			WillReturnRows(pgxmock.NewRows(personCols).
				AddRow(int64(5), "Josias Barreto", dob, "128.363.000-19", stamp, stamp))
		mock.ExpectExec(q(DeleteAddressesByPersonID)).
			WithArgs(int64(5)).
			WillReturnResult(pgxmock.NewResult("DELETE", 2))
		mock.ExpectQuery(q(InsertAddress)).
			WithArgs(int64(5), "Avenida X", "178-A", "Parque Guarus", "Campos dos Goytacazes", "RJ", "28143-000").
			WillReturnRows(pgxmock.NewRows(addressCols).
				AddRow(int64(77), int64(5), "Avenida X", "178-A", "Parque Guarus", "Campos dos Goytacazes", "RJ", "28143-000"))
		mock.ExpectCommit()

		p, err := repo.UpdatePerson(context.Background(), in)
		require.NoError(t, err)
		require.Len(t, p.Addresses, 1)
		assert.Equal(t, person.ID(77), p.Addresses[0].ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing person returns nil", func(t *testing.T) {
		mock, repo := newMock(t)
		in := someDomainPerson()
		in.ID = 9

		mock.ExpectBegin()
		mock.ExpectQuery(q(UpdatePersonByID)).
			WithArgs("Josias Barreto", dob, "128.363.000-19", "12836300019", int64(9)).
			WillReturnError(pgx.ErrNoRows)
		mock.ExpectRollback()

		p, err := repo.UpdatePerson(context.Background(), in)
		require.NoError(t, err)
		assert.Nil(t, p)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_DeletePerson(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		mock, repo := newMock(t)

		mock.ExpectQuery(q(DeletePersonByID)).
			WithArgs(int64(5)).
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(5)))

		ok, err := repo.DeletePerson(context.Background(), 5)
		require.NoError(t, err)
		assert.True(t, ok)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("nothing to delete", func(t *testing.T) {
		mock, repo := newMock(t)

		mock.ExpectQuery(q(DeletePersonByID)).
			WithArgs(int64(6)).
			WillReturnError(pgx.ErrNoRows)

		ok, err := repo.DeletePerson(context.Background(), 6)
		require.NoError(t, err)
		assert.False(t, ok)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
