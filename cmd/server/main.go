package main

import (
	"os"
)

// @title Minimal API
// @version 1.0
// @description Administrator and vehicle registry guarded by JWT bearer tokens with Adm and Editor roles.

// @contact.name API Support
// @contact.email support@example.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter your JWT token with the `Bearer ` prefix, e.g. "Bearer eyJhbGci..."

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
