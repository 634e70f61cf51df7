package main

import (
	"bufio"
	"errors"
	"fmt"
	"hospital_app_go/config"
	"hospital_app_go/db"
	"hospital_app_go/logging"
	"hospital_app_go/models"
	"hospital_app_go/services"
	"log"
	"os"
	"strings"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/term"
)

const minPasswordLength = 8

func main() {
	// Load configuration
	cfg := config.Load()

	logger, err := logging.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	// Initialize database
	if err := db.Initialize(db.Options{
		Path:        cfg.DBPath,
		TursoURL:    cfg.TursoDatabaseURL,
		TursoToken:  cfg.TursoAuthToken,
		Environment: cfg.Environment,
	}, logger); err != nil {
		logger.Fatal("failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	if err := db.AutoMigrate(&models.User{}, &models.Session{}); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	reader := bufio.NewReader(os.Stdin)

	fmt.Println("=== Create New User ===")
	fmt.Println()

	name := prompt(reader, "Name: ")
	email := strings.ToLower(prompt(reader, "Email: "))
	roleInput := prompt(reader, fmt.Sprintf("Role (%s): ", roleChoices()))

	// Get password securely
	fmt.Print("Password: ")
	passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		logger.Fatal("failed to read password", zap.Error(err))
	}
	fmt.Println() // New line after password input

	user, err := newUser(name, email, string(passwordBytes), roleInput)
	if err != nil {
		logger.Fatal("invalid user", zap.Error(err))
	}

	// Check if user already exists
	var existing models.User
	if err := db.DB.Where("email = ?", user.Email).First(&existing).Error; err == nil {
		logger.Fatal("user already exists", zap.String("email", user.Email))
	}

	if err := db.DB.Create(user).Error; err != nil {
		logger.Fatal("failed to create user", zap.Error(err))
	}

	fmt.Println()
	fmt.Println("✓ User created successfully!")
	fmt.Printf("  ID: %s\n", user.ID)
	fmt.Printf("  Name: %s\n", user.Name)
	fmt.Printf("  Email: %s\n", user.Email)
	fmt.Printf("  Role: %s\n", user.Role)
	fmt.Println()
	fmt.Printf("The user can now log in at %s/login\n", cfg.AppURL)
}

func prompt(reader *bufio.Reader, label string) string {
	fmt.Print(label)
	value, _ := reader.ReadString('\n')
	return strings.TrimSpace(value)
}

func roleChoices() string {
	roles := models.AllRoles()
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = r.String()
	}
	return strings.Join(names, "/")
}

// newUser validates the prompted values and returns an active user with a hashed password
func newUser(name, email, password, roleInput string) (*models.User, error) {
	if name == "" || email == "" || password == "" {
		return nil, errors.New("name, email, and password are required")
	}
	if len(password) < minPasswordLength {
		return nil, fmt.Errorf("password must be at least %d characters long", minPasswordLength)
	}
	role, ok := models.ParseRole(roleInput)
	if !ok {
		return nil, fmt.Errorf("unknown role %q, expected one of %s", roleInput, roleChoices())
	}

	hashedPassword, err := services.HashPassword(password)
	if err != nil {
		return nil, err
	}
	return &models.User{
		Name:     name,
		Email:    email,
		Password: hashedPassword,
		Role:     role,
		IsActive: true,
	}, nil
}
