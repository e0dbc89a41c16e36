package main

import (
	"fmt"
	"io"
	"log"

	"github.com/peterh/liner"
	flag "github.com/spf13/pflag"

	"github.com/mbuckingham74/moms-recipes-sub001/config"
	"github.com/mbuckingham74/moms-recipes-sub001/models"
	"github.com/mbuckingham74/moms-recipes-sub001/services"
)

// Creates or resets an account. Re-running with the same username
// just updates the password and role.
func main() {
	username := flag.StringP("username", "u", "admin", "account name")
	password := flag.StringP("password", "p", "", "password (prompted when omitted)")
	role := flag.String("role", models.RoleAdmin, "role (admin|viewer)")
	flag.Parse()

	if *password == "" {
		*password = promptPassword(*username)
	}
	if *role != models.RoleAdmin && *role != models.RoleViewer {
		log.Fatalf("unknown role %q (want admin or viewer)", *role)
	}

	config.InitDB()

	user, err := services.UpsertUser(*username, *password, *role)
	if err != nil {
		log.Fatalf("Failed to seed user: %v", err)
	}
	fmt.Printf("user %q (id %d) ready with role %s\n", user.Username, user.ID, user.Role)
}

func promptPassword(username string) string {
	l := liner.NewLiner()
	l.SetCtrlCAborts(true)

	pw, err := l.PasswordPrompt(fmt.Sprintf("password for %s: ", username))
	l.Close() // Fatal below would skip a deferred Close

	if err == liner.ErrPromptAborted || err == io.EOF {
		log.Fatal("aborted")
	}
	if err != nil {
		log.Fatalf("Failed to read password: %v", err)
	}
	if pw == "" {
		log.Fatal("a password is required")
	}
	return pw
}
