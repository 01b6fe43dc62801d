package main

import (
	"os"

	"github.com/GoEvent-Admin/GoEvent-Admin/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
