package person

import (
	domain "person-registry-api/internal/domain/person"
)

func fromDBModel(model *Person, addresses Addresses) *domain.Person {
	var p = &domain.Person{
		ID:          domain.ID(model.ID),
		Name:        model.Name,
		DateOfBirth: model.DateOfBirth,
		CPF:         model.CPF,
		Addresses:   fromDBAddresses(addresses),

		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}

	return p
}

func fromDBAddress(model *Address) *domain.Address {
	return &domain.Address{
		ID:           domain.ID(model.ID),
		PersonID:     domain.ID(model.PersonID),
		Street:       model.Street,
		Number:       model.Number,
		Neighborhood: model.Neighborhood,
		City:         model.City,
		State:        model.State,
		ZipCode:      model.ZipCode,
	}
}

func fromDBAddresses(models Addresses) domain.Addresses {
	as := make(domain.Addresses, len(models))
	for idx, a := range models {
		as[idx] = fromDBAddress(a)
	}

	return as
}

// fromDBModels keeps the order of models; addresses are grouped by owner.
func fromDBModels(models Persons, addresses Addresses) domain.Persons {
	byOwner := make(map[int64]Addresses, len(models))
	for _, a := range addresses {
		byOwner[a.PersonID] = append(byOwner[a.PersonID], a)
	}

	ps := make(domain.Persons, len(models))
	for idx, p := range models {
		ps[idx] = fromDBModel(p, byOwner[p.ID])
	}

	return ps
}
