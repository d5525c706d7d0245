// Command hash_password prints the bcrypt hash to configure as
// EXPENSEIT_ADMIN_PASSWORD_HASH.
package main

import (
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: go run ./cmd/hash_password <password>")
		os.Exit(2)
	}
	hpw, err := bcrypt.GenerateFromPassword([]byte(os.Args[1]), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bcrypt failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(hpw))
}
