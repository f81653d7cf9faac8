package main

import (
	"os"

	"resumeqa/web/internal/app"
)

// @title           Resume Q&A Web Client API
// @version         1.0
// @description     JSON endpoints of the Resume Q&A browser client.
// @host            localhost:8080
// @BasePath        /api
func main() {
	os.Exit(app.Run())
}
