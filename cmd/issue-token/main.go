// Command issue-token mints a bearer token for an actor. Identities are
// managed outside this service; the command exists for operators and local
// development.
//
// Usage:
//
//	issue-token --actor=<uuid> --role=caseworker [--ttl=1h]
//
// Requires AUTH_JWT_SECRET (and the rest of the config) to be set.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/heartmarshall/grievance-backend/internal/auth"
	"github.com/heartmarshall/grievance-backend/internal/config"
)

func main() {
	actor := flag.String("actor", "", "actor UUID (student or caseworker id)")
	role := flag.String("role", auth.RoleCaseworker, "student, caseworker or admin")
	ttl := flag.Duration("ttl", time.Hour, "token lifetime")
	flag.Parse()

	id, err := uuid.Parse(*actor)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Usage: issue-token --actor=<uuid> --role=caseworker [--ttl=1h]")
		os.Exit(1)
	}
	switch *role {
	case auth.RoleStudent, auth.RoleCaseworker, auth.RoleAdmin:
	default:
		log.Fatalf("unknown role %q", *role)
	}

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.Leeway)
	token, err := jwtManager.IssueAccessToken(id, *role, *ttl)
	if err != nil {
		log.Fatalf("issue token: %v", err)
	}

	fmt.Println(token)
}
