// Command devtoken prints a signed bearer token for calling the API locally.
package main

import (
	"flag"
	"fmt"
	"os"
	"slices"

	"github.com/joho/godotenv"

	"hrms/internal/domain/auth"
	"hrms/internal/platform/config"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	userID := flag.String("user", "dev-user", "user id placed in the token")
	employeeID := flag.String("employee", "", "employee id the user may read as themselves")
	role := flag.String("role", auth.RoleHR, "one of employee, manager, hr, system_admin")
	secret := flag.String("secret", cfg.JWTSecret, "signing secret, defaults to JWT_SECRET")
	flag.Parse()

	if !slices.Contains(auth.Roles, *role) {
		fmt.Fprintf(os.Stderr, "unknown role %q\n", *role)
		os.Exit(2)
	}
	if *secret == "" {
		fmt.Fprintln(os.Stderr, "JWT_SECRET is empty; pass -secret dev-only-secret to match a server running without one")
		os.Exit(2)
	}

	token, err := auth.GenerateToken(*secret, auth.Claims{UserID: *userID, EmployeeID: *employeeID, RoleName: *role}, cfg.TokenTTL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "sign token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
