package person

const (
	SelectPersons = `
		SELECT id, name, date_of_birth, cpf, created_at, updated_at
		FROM persons
		ORDER BY id
		LIMIT $1 OFFSET $2
	`
	CountPersons     = `SELECT count(*) FROM persons`
	SelectPersonByID = `
		SELECT id, name, date_of_birth, cpf, created_at, updated_at
		FROM persons
		WHERE id = $1
	`
	ExistsPersonByCPF = `SELECT EXISTS (SELECT 1 FROM persons WHERE cpf_digits = $1)`
	InsertPerson      = `
		INSERT INTO persons (name, date_of_birth, cpf, cpf_digits)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, date_of_birth, cpf, created_at, updated_at
	`
	UpdatePersonByID = `
		UPDATE persons
		SET name = $1,
		    date_of_birth = $2,
		    cpf = $3,
		    cpf_digits = $4,
		    updated_at = now()
		WHERE id = $5
		RETURNING id, name, date_of_birth, cpf, created_at, updated_at
	`
	DeletePersonByID = `DELETE FROM persons WHERE id = $1 RETURNING id`

	SelectAddressesByPersonIDs = `
		SELECT id, person_id, street, number, neighborhood, city, state, zip_code
		FROM addresses
		WHERE person_id = ANY($1)
		ORDER BY id
	`
	InsertAddress = `
		INSERT INTO addresses (person_id, street, number, neighborhood, city, state, zip_code)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, person_id, street, number, neighborhood, city, state, zip_code
	`
	DeleteAddressesByPersonID = `DELETE FROM addresses WHERE person_id = $1`
)
