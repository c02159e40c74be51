// Package gstin valida el GSTIN (GST Identification Number) y expone los
// códigos de estado usados para decidir entre CGST+SGST e IGST.
package gstin

import (
	"fmt"
	"regexp"
	"strings"
)

const charset = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Formato: 2 dígitos de estado + PAN (5 letras, 4 dígitos, 1 letra) + entidad + 'Z' + dígito de control.
var pattern = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`)

// Normalize quita espacios y pasa a mayúsculas.
func Normalize(gstin string) string {
	return strings.ToUpper(strings.TrimSpace(gstin))
}

// Validate verifica formato, código de estado y dígito de control (módulo 36).
func Validate(gstin string) error {
	g := Normalize(gstin)
	if len(g) != 15 {
		return fmt.Errorf("gstin: debe tener 15 caracteres, se recibieron %d", len(g))
	}
	if !pattern.MatchString(g) {
		return fmt.Errorf("gstin: formato inválido %q", g)
	}
	if _, ok := states[g[:2]]; !ok {
		return fmt.Errorf("gstin: código de estado desconocido %q", g[:2])
	}
	expected, err := CheckDigit(g[:14])
	if err != nil {
		return err
	}
	if g[14] != expected {
		return fmt.Errorf("gstin: dígito de control inválido: esperado %c, recibido %c", expected, g[14])
	}
	return nil
}

// CheckDigit calcula el dígito de control para los 14 primeros caracteres.
// Factores alternos 1 y 2; cada producto aporta cociente + residuo en base 36.
func CheckDigit(base string) (byte, error) {
	if len(base) != 14 {
		return 0, fmt.Errorf("gstin: se requieren 14 caracteres para el dígito de control, se recibieron %d", len(base))
	}
	sum := 0
	for i := 0; i < 14; i++ {
		v := strings.IndexByte(charset, base[i])
		if v < 0 {
			return 0, fmt.Errorf("gstin: carácter inválido %q en la posición %d", base[i], i+1)
		}
		factor := 1
		if i%2 == 1 {
			factor = 2
		}
		p := v * factor
		sum += p/36 + p%36
	}
	return charset[(36-sum%36)%36], nil
}

// StateCode devuelve los dos primeros dígitos del GSTIN, o "" si no es un código conocido.
// No valida el dígito de control: sirve para derivar el estado de registros importados.
func StateCode(gstin string) string {
	g := Normalize(gstin)
	if len(g) < 2 {
		return ""
	}
	if _, ok := states[g[:2]]; !ok {
		return ""
	}
	return g[:2]
}

// StateName devuelve el nombre del estado o territorio para un código GST.
func StateName(code string) string {
	return states[code]
}

// ValidStateCode indica si el código de estado existe en la tabla GST.
func ValidStateCode(code string) bool {
	_, ok := states[code]
	return ok
}
