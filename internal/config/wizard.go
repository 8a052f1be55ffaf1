package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to the given path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to wellbot! Let's configure your service.")
	fmt.Println()

	cfg := DefaultConfig()

	emailPrompt := promptui.Prompt{
		Label: "Admin email",
		Validate: func(s string) error {
			if !strings.Contains(s, "@") {
				return fmt.Errorf("not a valid email address")
			}
			return nil
		},
	}
	adminEmail, err := emailPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("admin email: %w", err)
	}
	cfg.AdminEmail = adminEmail

	passwordPrompt := promptui.Prompt{
		Label: "Admin password",
		Mask:  '*',
		Validate: func(s string) error {
			if len(s) < 8 {
				return fmt.Errorf("password must be at least 8 characters")
			}
			return nil
		},
	}
	adminPassword, err := passwordPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("admin password: %w", err)
	}
	cfg.AdminPassword = adminPassword

	portPrompt := promptui.Prompt{
		Label:   "Port",
		Default: strconv.Itoa(cfg.Port),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 || n > 65535 {
				return fmt.Errorf("not a valid port")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Port, _ = strconv.Atoi(portStr)

	translatePrompt := promptui.Select{
		Label: "Enable machine translation for non-English users",
		Items: []string{"yes", "no"},
	}
	idx, _, err := translatePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("translation selection: %w", err)
	}
	cfg.Translate.Enabled = idx == 0

	secret, err := generateSecret()
	if err != nil {
		return nil, fmt.Errorf("generating JWT secret: %w", err)
	}
	cfg.JWTSecret = secret

	if err := cfg.Save(path); err != nil {
		return nil, err
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	fmt.Println("A random JWT secret was generated; keep the file private.")
	return cfg, nil
}

// generateSecret produces a 32-byte hex-encoded random signing secret.
func generateSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
