package entity

import "time"

// Tipos de tercero (cliente, proveedor o ambos).
const (
	PartyTypeCustomer = "customer"
	PartyTypeSupplier = "supplier"
	PartyTypeBoth     = "both"
)

// Party representa un tercero del negocio (cliente y/o proveedor).
// StateCode es el código GST de estado (2 dígitos) y define si una operación es interestatal.
type Party struct {
	ID        string
	Name      string
	Type      string // customer | supplier | both
	GSTIN     string // opcional; los dos primeros dígitos son el código de estado
	StateCode string
	Email     string
	Phone     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsCustomer indica si el tercero puede recibir facturas de venta.
func (p Party) IsCustomer() bool {
	return p.Type == PartyTypeCustomer || p.Type == PartyTypeBoth
}

// IsSupplier indica si el tercero puede emitir facturas de compra.
func (p Party) IsSupplier() bool {
	return p.Type == PartyTypeSupplier || p.Type == PartyTypeBoth
}

// ValidPartyType valida el discriminador de tipo de tercero.
func ValidPartyType(t string) bool {
	switch t {
	case PartyTypeCustomer, PartyTypeSupplier, PartyTypeBoth:
		return true
	}
	return false
}
