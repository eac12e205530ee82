package ports

import (
	"context"

	"person-registry-api/internal/domain/person"
)

type PersonService interface {
	FindPersonByID(ctx context.Context, id person.ID) (*person.Person, error)
	FindPersons(ctx context.Context, page, size int) (*person.Page, error)
	CreatePerson(ctx context.Context, p person.Person) (*person.Person, error)
	UpdatePerson(ctx context.Context, id person.ID, p person.Person) (*person.Person, error)
	DeletePerson(ctx context.Context, id person.ID) error
	CalculateAge(ctx context.Context, id person.ID) (string, error)
}
