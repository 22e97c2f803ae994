//go:build ignore

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func main() {
	// Read session secret from environment
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		fmt.Fprintln(os.Stderr, "Error: SESSION_SECRET environment variable must be set")
		fmt.Fprintln(os.Stderr, "Usage: SESSION_SECRET=secret [SERVICE_NAME=socialchef-leftover] go run scripts/generate-session.go")
		os.Exit(1)
	}
	issuer := os.Getenv("SERVICE_NAME")
	if issuer == "" {
		issuer = "socialchef-leftover"
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": uuid.New().String(),
		"iss": issuer,
		"iat": now.Unix(),
		"exp": now.Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error signing token: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(tokenString)
}
