package person

import (
	"time"
)

type (
	ID     int64
	Person struct {
		ID          ID
		Name        string
		DateOfBirth time.Time
		CPF         string
		Addresses   Addresses

		CreatedAt time.Time
		UpdatedAt time.Time
	}
	Persons []*Person

	// Address is owned by exactly one Person, referenced through PersonID.
	Address struct {
		ID           ID
		PersonID     ID
		Street       string
		Number       string
		Neighborhood string
		City         string
		State        string
		ZipCode      string
	}
	Addresses []*Address

	Page struct {
		Persons Persons
		Number  int
		Size    int
		Total   int64
	}
)

// LinkAddresses points every address at p. Must be called whenever p.ID
// changes and before the person is handed to a Repository.
func (p *Person) LinkAddresses() {
	for _, a := range p.Addresses {
		a.PersonID = p.ID
	}
}

// AgeAt returns the number of whole years between the date of birth and now.
func (p *Person) AgeAt(now time.Time) int {
	dob := p.DateOfBirth
	years := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		years--
	}
	if years < 0 {
		return 0
	}

	return years
}

func (pg Page) TotalPages() int {
	if pg.Size <= 0 {
		return 0
	}
	return int((pg.Total + int64(pg.Size) - 1) / int64(pg.Size))
}
