// Package main issues API access tokens for statement importers.
//
// The API only validates tokens; operators mint them with this command using
// the same JWT_SECRET and JWT_ISSUER as the server:
//
//	go run ./cmd/token -subject importer -ttl 720h
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/rachellllllllll/CreditCanvas-sub001/config"
	"github.com/rachellllllllll/CreditCanvas-sub001/internal/integration/adapters"
)

const defaultTTL = 24 * time.Hour

var (
	errMissingSecret  = errors.New("JWT_SECRET is not set")
	errMissingSubject = errors.New("-subject is required")
	errInvalidTTL     = errors.New("-ttl must be positive")
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	if err := run(os.Args[1:], config.Load().JWT, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "token:", err)
		os.Exit(2)
	}
}

// run parses the flags and writes one signed token to out.
func run(args []string, cfg config.JWTConfig, out io.Writer) error {
	fs := flag.NewFlagSet("token", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	subject := fs.String("subject", "", "token subject, usually the importer name")
	ttl := fs.Duration("ttl", defaultTTL, "token lifetime")
	if err := fs.Parse(args); err != nil {
		return err
	}

	switch {
	case cfg.Secret == "":
		return errMissingSecret
	case *subject == "":
		return errMissingSubject
	case *ttl <= 0:
		return errInvalidTTL
	}

	token, err := adapters.NewTokenService(cfg.Secret, cfg.Issuer).
		GenerateAccessToken(context.Background(), *subject, *ttl)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(out, token)
	return err
}
