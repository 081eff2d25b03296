// Command seedadmin prints the SQL to create an admin account with a
// bcrypt-hashed password. Run it and paste the output into psql.
package main

import (
	"flag"
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	userID := flag.String("user", "admin1a", "admin user id")
	email := flag.String("email", "admin@careermatch.local", "admin email")
	pass := flag.String("pass", "", "admin password (required)")
	flag.Parse()

	if *pass == "" {
		fmt.Fprintln(os.Stderr, "usage: seedadmin -pass <password> [-user id] [-email addr]")
		os.Exit(2)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*pass), 12)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	fmt.Printf(`INSERT INTO users (user_id, email, password_hash, phone, full_name, role, profile_completed, is_active, created_at, updated_at)
VALUES ('%s', '%s', '%s', '', 'Administrator', 'admin', true, true, now(), now());
`, *userID, *email, string(hash))
}
