// Command synpatico-agentd runs the server-side negotiation agent of
// spec.md §4.G as a standalone reverse proxy in front of an upstream
// JSON API, so an unmodified client (or a negotiate.Client-wrapped
// one) can exercise the full RECV→FETCH→LEARN→ENCODE?→EMIT cycle
// against a real HTTP listener.
//
// Grounded on leanlp-BTC-coinjoin/cmd's main.go: required-env-or-fatal
// config loading, a gin router built by a separate setupRouter, and
// r.Run(":"+port) to serve.
package main

import (
	"log"
	"os"

	"github.com/synpatico-dev/synpatico"
	"github.com/synpatico-dev/synpatico/negotiate"
)

func main() {
	log.Println("Starting synpatico-agentd...")

	upstream := requireEnv("UPSTREAM_URL")
	port := getEnvOrDefault("PORT", "8089")
	collisionMode := getEnvOrDefault("COLLISION_MODE", "") == "true"
	requestOptimization := getEnvOrDefault("REQUEST_OPTIMIZATION", "") == "true"

	engine := synpatico.NewEngine(
		synpatico.WithCollisionMode(collisionMode),
		synpatico.WithRequestOptimization(requestOptimization),
	)
	if err := engine.Validate(); err != nil {
		log.Fatalf("FATAL: invalid engine configuration: %v", err)
	}

	agent := negotiate.NewAgent(engine, upstream)

	r := setupRouter(engine, agent)
	log.Printf("synpatico-agentd listening on :%s, proxying %s\n", port, upstream)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("FATAL: server exited: %v", err)
	}
}

// requireEnv reads a required environment variable and exits if unset.
func requireEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		log.Fatalf("FATAL: required environment variable %s is not set", key)
	}
	return val
}

// getEnvOrDefault returns the env var value or a safe default.
func getEnvOrDefault(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
