// File path: cmd/glossd/main.go
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/opengloss/glossd/internal/api"
	"github.com/opengloss/glossd/internal/common"
	"github.com/opengloss/glossd/internal/glossary"
	"github.com/opengloss/glossd/internal/llm"
	"github.com/opengloss/glossd/internal/store"
	"github.com/opengloss/glossd/internal/workflow"
)

func main() {
	logger := common.Logger()

	if err := godotenv.Load(); err != nil {
		logger.Warn("glossd: .env file not loaded", "error", err)
	} else {
		logger.Info("glossd: environment loaded from .env")
	}

	addr := flag.String("addr", defaultAddr(), "listen address")
	dsn := flag.String("dsn", "", "postgres connection string (defaults to DATABASE_URL)")
	flag.Parse()

	logger.Info("glossd: startup initiated", "addr", *addr)

	st, err := store.Open(*dsn)
	if err != nil {
		logger.Error("glossd: store initialization failed", "error", err)
		fmt.Println("store error:", err)
		os.Exit(1)
	}
	defer st.Close()

	provider := llm.NewProvider()
	logger.Info("glossd: llm provider ready", "provider", provider.Name())

	generator := glossary.NewGenerator(provider)
	definer, err := workflow.New(st, generator, provider)
	if err != nil {
		logger.Error("glossd: workflow construction failed", "error", err)
		fmt.Println("workflow error:", err)
		os.Exit(1)
	}

	server, err := api.NewServer(st, definer, provider)
	if err != nil {
		logger.Error("glossd: server construction failed", "error", err)
		fmt.Println("server error:", err)
		os.Exit(1)
	}

	logger.Info("glossd: server listening", "addr", *addr, "health", "/health")
	fmt.Printf("Serving on %s\n", *addr)
	reachable := *addr
	if strings.HasPrefix(reachable, ":") {
		reachable = "localhost" + reachable
	}
	logger.Info("glossd: verify reachability", "suggestion", fmt.Sprintf("curl http://%s/health", reachable))
	if err := http.ListenAndServe(*addr, server); err != nil {
		logger.Error("glossd: server stopped", "error", err)
		fmt.Println("server stopped:", err)
	}
}

func defaultAddr() string {
	if addr := strings.TrimSpace(os.Getenv("GLOSSD_ADDR")); addr != "" {
		return addr
	}
	return ":8080"
}
