// filepath: cmd/mediacatalog/main.go
package main

import (
	"mediacatalog/internal/cli"

	// Import docs for Swagger
	_ "mediacatalog/docs"
)

// @title Media Catalog API
// @version 1.0.0
// @description REST API for a catalog of movies and TV shows with image uploads and basic accounts.
// @BasePath /api
// @schemes http
// @import encoding/json

func main() {
	// Delegate all execution to the CLI package
	cli.Execute()
}
