// Command token prints an access token for the given caller, signed with
// AUTH_JWT_SECRET. It is meant for local development against the private
// routes.
package main

import (
	"agenda/pkg/config"
	"agenda/pkg/jwt"
	"flag"
	"fmt"
	"os"
	"time"
)

func main() {
	caller := flag.String("caller", "", "subject of the token")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot load config: %v\n", err)
		os.Exit(1)
	}
	if cfg.Auth.JWTSecret == "" {
		fmt.Fprintln(os.Stderr, "AUTH_JWT_SECRET is not set")
		os.Exit(1)
	}

	p := jwt.NewJWTProvider(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTL)*time.Second)
	token, err := p.GenerateAccessToken(*caller)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot sign token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
