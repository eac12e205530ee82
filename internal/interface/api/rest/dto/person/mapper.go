package person

import (
	"errors"
	"time"

	"person-registry-api/internal/domain/person"
)

const DateLayout = "2006-01-02"

func ToResponsePerson(pDomain person.Person) Person {
	var p = Person{
		ID:          int64(pDomain.ID),
		Name:        pDomain.Name,
		DateOfBirth: pDomain.DateOfBirth.Format(DateLayout),
		CPF:         pDomain.CPF,
		Addresses:   make(Addresses, len(pDomain.Addresses)),
	}
	for idx, a := range pDomain.Addresses {
		p.Addresses[idx] = ToResponseAddress(*a)
	}

	return p
}

func ToResponseAddress(aDomain person.Address) Address {
	return Address{
		ID:           int64(aDomain.ID),
		Street:       aDomain.Street,
		Number:       aDomain.Number,
		Neighborhood: aDomain.Neighborhood,
		City:         aDomain.City,
		State:        aDomain.State,
		ZipCode:      aDomain.ZipCode,
	}
}

func ToResponsePersons(psDomain person.Persons) Persons {
	ps := make(Persons, len(psDomain))
	for idx, p := range psDomain {
		ps[idx] = ToResponsePerson(*p)
	}

	return ps
}

func ToResponsePage(pg person.Page) PageResponse {
	return PageResponse{
		Data:          ToResponsePersons(pg.Persons),
		Page:          pg.Number,
		Size:          pg.Size,
		TotalElements: pg.Total,
		TotalPages:    pg.TotalPages(),
	}
}

// ToDomainPerson builds a new, not yet persisted person: ids in the request
// are ignored and every address is linked back to the person.
func ToDomainPerson(pRequest Request) (person.Person, error) {
	d, err := time.Parse(DateLayout, pRequest.DateOfBirth)
	if err != nil {
		return person.Person{}, errors.New("invalid dateOfBirth format, want YYYY-MM-DD")
	}

	var p = person.Person{
		Name:        pRequest.Name,
		DateOfBirth: d,
		CPF:         pRequest.CPF,
		Addresses:   make(person.Addresses, len(pRequest.Addresses)),
	}
	for idx, a := range pRequest.Addresses {
		p.Addresses[idx] = &person.Address{
			Street:       a.Street,
			Number:       a.Number,
			Neighborhood: a.Neighborhood,
			City:         a.City,
			State:        a.State,
			ZipCode:      a.ZipCode,
		}
	}
	p.LinkAddresses()

	return p, nil
}
