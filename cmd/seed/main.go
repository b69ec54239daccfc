package main

import (
	"direct-chat/auth"
	"direct-chat/repositories"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/joho/godotenv"
	"github.com/olekukonko/tablewriter"
)

type Config struct {
	BadgerFilepath string        `env:"BADGER_FILEPATH,required=true"`
	JWTSecret      string        `env:"JWT_SECRET,required=true"`
	JWTIssuer      string        `env:"JWT_ISSUER,default=direct-chat"`
	TokenDuration  time.Duration `env:"AUTH_TOKEN_DURATION,default=24h"`
}

// seed creates users in a stopped server's store and prints a token for each,
// ready for cmd/client and the e2e suite.
func main() {
	names := flag.String("users", "alice,bob", "Comma separated usernames to create")
	flag.Parse()

	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		log.Fatalf("Config error: %v", err)
	}
	tokens, err := auth.NewTokenManager(config.JWTSecret, config.JWTIssuer, config.TokenDuration)
	if err != nil {
		log.Fatal(err)
	}

	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).WithLoggingLevel(badger.WARNING))
	if err != nil {
		log.Fatalf("Failed to open database (is the server running?): %v", err)
	}
	defer db.Close()
	users := repositories.NewUserRepository(db)

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Username", "User ID", "Token"})
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	for _, name := range strings.Split(*names, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		user, err := users.CreateUser(name)
		if err != nil {
			log.Fatalf("Failed to create %s: %v", name, err)
		}
		token, err := tokens.GenerateToken(user.ID, []string{"user"})
		if err != nil {
			log.Fatal(err)
		}
		table.Append([]string{user.Username, user.ID, token})
	}
	table.Render()
	fmt.Println(color.Green.Sprint("Users created. Export DIRECT_CHAT_TOKEN with one of the tokens to use cmd/client."))
}
