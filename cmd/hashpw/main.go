// Command hashpw prints the bcrypt hash of a password for use as
// AUTH_ADMIN_PASSWORD_HASH. The cost comes from AUTH_BCRYPT_COST.
package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/FFMGAMER/FFM-Gen-Bot/internal/auth"
	"github.com/FFMGAMER/FFM-Gen-Bot/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	var password string
	if len(os.Args) > 1 {
		password = os.Args[1]
	} else {
		fmt.Fprint(os.Stderr, "password: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			log.Fatalf("read password: %v", err)
		}
		password = strings.TrimRight(line, "\r\n")
	}
	if password == "" {
		log.Fatal("a password is required")
	}

	hash, err := auth.HashPassword(password, cfg.Auth.BcryptCost)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}
	fmt.Println(hash)
}
