// Command devtoken prints a bearer token accepted by the API when it runs
// with AUTH_PROVIDER=jwt. It reads JWT_SECRET and JWT_ISSUER the same way
// the server does.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/nemopss/pennywise/backend/auth"
	"github.com/nemopss/pennywise/backend/config"
)

func main() {
	subject := flag.String("sub", "dev-user", "token subject (user id)")
	email := flag.String("email", "", "email claim")
	ttl := flag.Duration("ttl", time.Hour, "token lifetime")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	token, err := auth.SignToken(cfg.JWTSecret, cfg.JWTIssuer, *subject, *email, *ttl)
	if err != nil {
		log.Fatalf("sign token: %v", err)
	}
	fmt.Println(token)
}
