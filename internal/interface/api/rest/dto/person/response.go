package person

type (
	Person struct {
		ID          int64     `json:"id"`
		Name        string    `json:"name"`
		DateOfBirth string    `json:"dateOfBirth"`
		CPF         string    `json:"cpf"`
		Addresses   Addresses `json:"addresses"`
	}
	Persons []Person

	Address struct {
		ID           int64  `json:"id"`
		Street       string `json:"street"`
		Number       string `json:"number"`
		Neighborhood string `json:"neighborhood"`
		City         string `json:"city"`
		State        string `json:"state"`
		ZipCode      string `json:"zipCode"`
	}
	Addresses []Address

	PageResponse struct {
		Data          Persons `json:"data"`
		Page          int     `json:"page"`
		Size          int     `json:"size"`
		TotalElements int64   `json:"totalElements"`
		TotalPages    int     `json:"totalPages"`
	}
)
