package main

import (
	"os"

	"github.com/facultyai/mlflow-faculty/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
