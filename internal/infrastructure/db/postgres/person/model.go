package person

import (
	"time"
)

type (
	Person struct {
		ID          int64
		Name        string
		DateOfBirth time.Time
		CPF         string

		CreatedAt time.Time
		UpdatedAt time.Time
	}
	Persons []*Person

	Address struct {
		ID           int64
		PersonID     int64
		Street       string
		Number       string
		Neighborhood string
		City         string
		State        string
		ZipCode      string
	}
	Addresses []*Address
)
