// Package identificacion valida cédulas (10 dígitos) y RUC (13 dígitos) de Ecuador.
package identificacion

import (
	"fmt"
	"strings"
)

const (
	cedulaLen = 10
	rucLen    = 13
	provinces = 24
)

// Validate valida una identificación de cliente o proveedor: cédula o RUC.
func Validate(id string) error {
	id = strings.TrimSpace(id)
	switch len(id) {
	case cedulaLen:
		return ValidateCedula(id)
	case rucLen:
		return ValidateRUC(id)
	default:
		return fmt.Errorf("identificación debe tener %d o %d dígitos, se recibieron %d", cedulaLen, rucLen, len(id))
	}
}

// ValidateCedula aplica el algoritmo módulo 10: código de provincia 01-24, tercer dígito 0-5
// y dígito verificador en la décima posición.
func ValidateCedula(id string) error {
	digits, err := toDigits(id, cedulaLen)
	if err != nil {
		return err
	}
	province := digits[0]*10 + digits[1]
	if province < 1 || province > provinces {
		return fmt.Errorf("código de provincia inválido: %02d", province)
	}
	if digits[2] > 5 {
		return fmt.Errorf("tercer dígito inválido: %d", digits[2])
	}
	expected := verifier(digits[:9])
	if digits[9] != expected {
		return fmt.Errorf("dígito verificador inválido: esperado %d, recibido %d", expected, digits[9])
	}
	return nil
}

// ValidateRUC acepta un RUC de persona natural: cédula válida + establecimiento distinto de 000.
func ValidateRUC(id string) error {
	if _, err := toDigits(id, rucLen); err != nil {
		return err
	}
	if err := ValidateCedula(id[:cedulaLen]); err != nil {
		return fmt.Errorf("RUC: %w", err)
	}
	if id[cedulaLen:] == "000" {
		return fmt.Errorf("RUC: establecimiento 000 inválido")
	}
	return nil
}

// ComputeVerifier calcula el dígito verificador para los 9 primeros dígitos de una cédula.
func ComputeVerifier(base string) (int, error) {
	digits, err := toDigits(base, 9)
	if err != nil {
		return 0, err
	}
	return verifier(digits), nil
}

// verifier: posiciones pares (desde 0) se duplican restando 9 si pasan de 9.
func verifier(digits []int) int {
	sum := 0
	for i, d := range digits {
		if i%2 == 0 {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
	}
	return (10 - sum%10) % 10
}

func toDigits(s string, n int) ([]int, error) {
	if len(s) != n {
		return nil, fmt.Errorf("se esperaban %d dígitos, se recibieron %d", n, len(s))
	}
	out := make([]int, n)
	for i := 0; i < n; i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return nil, fmt.Errorf("carácter no numérico en posición %d", i+1)
		}
		out[i] = int(c - '0')
	}
	return out, nil
}
