package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

type ConsoleConfig struct {
	APIBaseURL string
	Timeout    time.Duration
}

func main() {
	cfg := &ConsoleConfig{
		APIBaseURL: getEnv("API_BASE_URL", "http://localhost:8080"),
		Timeout:    30 * time.Second,
	}

	api := NewAPIClient(&http.Client{Timeout: cfg.Timeout}, cfg.APIBaseURL)

	if !api.TestConnection() {
		fmt.Fprintf(os.Stderr, "Could not connect to API. Please ensure the API is running.\nTry: docker-compose up -d\n")
		os.Exit(1)
	}

	cat, err := api.LoadCatalog()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load content: %v\n", err)
		os.Exit(1)
	}

	// SESSION_ID resumes a previous session; otherwise a new one starts.
	var session *SessionView
	if idStr := os.Getenv("SESSION_ID"); idStr != "" {
		id, err := uuid.Parse(idStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid SESSION_ID: %v\n", err)
			os.Exit(1)
		}
		resp, err := api.GetSession(id)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to resume session: %v\n", err)
			os.Exit(1)
		}
		session = (*SessionView)(resp)
	} else {
		resp, err := api.CreateSession()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create session: %v\n", err)
			os.Exit(1)
		}
		session = (*SessionView)(resp)
	}

	p := tea.NewProgram(NewConsoleUI(api, cat, session), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
