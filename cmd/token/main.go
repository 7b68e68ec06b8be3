package main

import (
	"fmt"
	"os"

	"github.com/damoang/angple-press/internal/config"
	"github.com/damoang/angple-press/internal/domain"
	"github.com/damoang/angple-press/pkg/jwt"
	"github.com/google/uuid"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// run mints a bearer token for local testing. Production tokens come from
// the identity provider.
func run(args []string) error {
	env := config.AppEnv()

	var userID, email, role, secret string
	var ttl int

	flagSet := pflag.NewFlagSet("token", pflag.ContinueOnError)
	flagSet.StringVar(&userID, "user", "", "user id (default: random UUID)")
	flagSet.StringVar(&email, "email", "", "email claim")
	flagSet.StringVar(&role, "role", string(domain.RoleViewer), "admin, editor or viewer")
	flagSet.StringVar(&secret, "secret", "", "signing secret (default: JWT_SECRET)")
	flagSet.IntVar(&ttl, "ttl", 3600, "lifetime in seconds")

	if err := flagSet.Parse(args); err != nil {
		return err
	}

	if _, ok := domain.ParseRole(role); !ok {
		return fmt.Errorf("unknown role %q", role)
	}
	if userID == "" {
		userID = uuid.NewString()
	}
	if secret == "" {
		config.LoadDotEnv(env)
		secret = os.Getenv("JWT_SECRET")
	}
	if secret == "" {
		return fmt.Errorf("no signing secret: pass --secret or set JWT_SECRET")
	}

	token, err := jwt.NewManager(secret, ttl).GenerateAccessToken(userID, email, role)
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}
