package identificacion_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casaguflo/inventario-api/pkg/identificacion"
)

func TestValidate_Cedula(t *testing.T) {
	cases := []struct {
		id    string
		valid bool
	}{
		{"1710034065", true},
		{"0102030400", true},
		{"0102030405", false}, // verificador incorrecto
		{"2510034065", false}, // provincia 25
		{"0002030400", false}, // provincia 00
		{"1760034065", false}, // tercer dígito 6
		{"17100340A5", false},
		{"171003406", false},
	}
	for _, tc := range cases {
		err := identificacion.Validate(tc.id)
		if tc.valid {
			assert.NoError(t, err, tc.id)
		} else {
			assert.Error(t, err, tc.id)
		}
	}
}

func TestValidate_RUC(t *testing.T) {
	assert.NoError(t, identificacion.Validate("1710034065001"))
	assert.Error(t, identificacion.Validate("1710034065000"), "establecimiento 000")
	assert.Error(t, identificacion.Validate("0102030405001"), "cédula base inválida")
	// solo persona natural: sociedades (tercer dígito 9) y sector público (6) no se aceptan
	assert.Error(t, identificacion.ValidateRUC("1790011674001"), "sociedad privada")
	assert.Error(t, identificacion.ValidateRUC("1760001550001"), "entidad pública")
}

func TestComputeVerifier_CoincideConValidacion(t *testing.T) {
	v, err := identificacion.ComputeVerifier("171003406")
	require.NoError(t, err)
	assert.Equal(t, 5, v)

	v, err = identificacion.ComputeVerifier("010203040")
	require.NoError(t, err)
	assert.Equal(t, 0, v)
}
