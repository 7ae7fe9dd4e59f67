package main

import (
	"os"

	"github.com/go-settings-admin/go-settings-admin/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
