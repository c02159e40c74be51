package dto

// CreatePartyRequest body para POST /api/parties.
// state_code se deriva del GSTIN cuando se omite.
type CreatePartyRequest struct {
	Name      string `json:"name" validate:"required,max=200"`
	Type      string `json:"type" validate:"required,oneof=customer supplier both"`
	GSTIN     string `json:"gstin,omitempty" validate:"omitempty,len=15,alphanum"`
	StateCode string `json:"state_code,omitempty" validate:"omitempty,len=2,numeric"`
	Email     string `json:"email,omitempty" validate:"omitempty,email"`
	Phone     string `json:"phone,omitempty" validate:"max=20"`
	Address   string `json:"address,omitempty" validate:"max=500"`
}

// PartyResponse tercero en respuestas.
type PartyResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	GSTIN     string `json:"gstin,omitempty"`
	StateCode string `json:"state_code,omitempty"`
	StateName string `json:"state_name,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
}
