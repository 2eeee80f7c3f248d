package main

import (
	"bufio"
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/spec-kit/helpdesk/internal/domain"
)

// resetpass resets a technician password from an operator shell. It writes
// the new password as a legacy authcode and removes any stored hash, so the
// next login migrates it to bcrypt through the normal path.
func main() {
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config.yaml"
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	if err := v.ReadInConfig(); err != nil {
		log.Fatalf("config error: %v", err)
	}
	employeeFile := v.GetString("employee_file")
	if employeeFile == "" {
		log.Fatal("employee_file must be configured")
	}

	data, err := os.ReadFile(employeeFile)
	if err != nil {
		log.Fatalf("read employee file: %v", err)
	}
	var employees []domain.Employee
	if err := json.Unmarshal(data, &employees); err != nil {
		log.Fatalf("decode employee file: %v", err)
	}

	reader := bufio.NewReader(os.Stdin)
	fmt.Print("Technician username: ")
	username, err := reader.ReadString('\n')
	if err != nil {
		log.Fatalf("read username: %v", err)
	}
	username = strings.TrimSpace(username)

	idx := -1
	for i := range employees {
		if employees[i].Username == username {
			idx = i
			break
		}
	}
	if idx < 0 {
		log.Fatalf("no technician named %q", username)
	}

	fmt.Print("New password: ")
	first, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		log.Fatalf("read password: %v", err)
	}
	fmt.Print("Confirm password: ")
	second, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		log.Fatalf("read password: %v", err)
	}
	if subtle.ConstantTimeCompare(first, second) != 1 {
		log.Fatal("passwords do not match")
	}
	if len(first) == 0 {
		log.Fatal("password cannot be empty")
	}

	employees[idx].LegacyAuthcode = string(first)
	employees[idx].PasswordHash = ""

	out, err := json.MarshalIndent(employees, "", "    ")
	if err != nil {
		log.Fatalf("encode employee file: %v", err)
	}
	if err := os.WriteFile(employeeFile, out, 0o644); err != nil {
		log.Fatalf("write employee file: %v", err)
	}

	fmt.Printf("Password reset for %s. It will be hashed on the next login.\n", username)
}
