package gst

import "strings"

// IsInterState indica si la operación entre el negocio y el tercero es interestatal.
// Si alguno de los códigos se desconoce, la operación se trata como local (CGST+SGST).
func IsInterState(businessStateCode, partyStateCode string) bool {
	b := strings.TrimSpace(businessStateCode)
	p := strings.TrimSpace(partyStateCode)
	if b == "" || p == "" {
		return false
	}
	return b != p
}
