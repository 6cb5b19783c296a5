// issuetoken emite un JWT firmado con JWT_SECRET para un usuario y rol.
// El alta de usuarios y el login quedan fuera de esta API; el token sirve para operar /api.
//
// Uso: go run ./cmd/issuetoken --user <uuid> --role bodeguero [--minutes 120]
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/pflag"

	"github.com/casaguflo/inventario-api/pkg/config"
	pkgjwt "github.com/casaguflo/inventario-api/pkg/jwt"
)

var roles = []string{"admin", "bodeguero", "vendedor"}

func main() {
	userID := pflag.StringP("user", "u", "", "id del usuario (uuid); vacío genera uno nuevo")
	role := pflag.StringP("role", "r", "vendedor", "rol: "+strings.Join(roles, " | "))
	minutes := pflag.IntP("minutes", "m", 0, "vigencia en minutos; 0 usa JWT_EXPIRATION_MINUTES")
	pflag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	if cfg.JWT.Secret == "" {
		fmt.Fprintln(os.Stderr, "JWT_SECRET no configurado")
		os.Exit(1)
	}

	r := strings.ToLower(strings.TrimSpace(*role))
	if !validRole(r) {
		fmt.Fprintf(os.Stderr, "Rol %q inválido (%s)\n", *role, strings.Join(roles, ", "))
		os.Exit(1)
	}
	uid := strings.TrimSpace(*userID)
	if uid == "" {
		uid = uuid.New().String()
	} else if _, err := uuid.Parse(uid); err != nil {
		fmt.Fprintf(os.Stderr, "Usuario %q no es un uuid: %v\n", uid, err)
		os.Exit(1)
	}
	exp := cfg.JWT.Expiration
	if *minutes > 0 {
		exp = *minutes
	}

	tok, err := pkgjwt.Generate(cfg.JWT.Secret, uid, r, cfg.JWT.Issuer, exp)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Generar token: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "usuario=%s rol=%s vigencia=%dm\n", uid, r, exp)
	fmt.Println(tok)
}

func validRole(r string) bool {
	for _, v := range roles {
		if v == r {
			return true
		}
	}
	return false
}
