package main

import (
	"fmt"

	"isa-agent/internal/infrastructure/env"
)

func main() {
	envService := env.NewEnvService()

	fmt.Println("Environment variables loaded successfully.")
	fmt.Printf("Example variable (if exists): %s\n", envService.Get("EXAMPLE_VAR"))
}
