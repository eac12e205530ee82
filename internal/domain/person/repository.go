package person

import (
	"context"
)

// Repository is the persistence gateway for persons and their addresses.
// Fetch methods return (nil, nil) when nothing matches.
type Repository interface {
	FetchPersonByID(ctx context.Context, id ID) (*Person, error)
	FetchPersons(ctx context.Context, page, size int) (*Page, error)
	ExistsByCPF(ctx context.Context, cpf string) (bool, error)
	CreatePerson(ctx context.Context, p Person) (*Person, error)
	UpdatePerson(ctx context.Context, p Person) (*Person, error)
	DeletePerson(ctx context.Context, id ID) (bool, error)
}
