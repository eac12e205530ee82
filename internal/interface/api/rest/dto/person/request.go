package person

type (
	Request struct {
		Name        string           `json:"name" validate:"required,min=3,max=50,startsupper"`
		DateOfBirth string           `json:"dateOfBirth" validate:"required,isodate,pastorpresent"`
		CPF         string           `json:"cpf" validate:"required,cpf"`
		Addresses   []AddressRequest `json:"addresses" validate:"required,min=1,dive"`
	}
	// AddressRequest.ID is accepted for compatibility and ignored: addresses
	// are always recreated from the request.
	AddressRequest struct {
		ID           *int64 `json:"id,omitempty"`
		Street       string `json:"street" validate:"required,notblank,max=100"`
		Number       string `json:"number" validate:"max=20"`
		Neighborhood string `json:"neighborhood" validate:"required,notblank,max=50"`
		City         string `json:"city" validate:"required,notblank,max=50"`
		State        string `json:"state" validate:"required,len=2,uf"`
		ZipCode      string `json:"zipCode" validate:"required,zipcode"`
	}
)
