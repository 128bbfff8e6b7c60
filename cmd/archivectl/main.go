package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/syrianarchive/archivectl/internal/api"
	"github.com/syrianarchive/archivectl/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		var apiErr *api.APIError
		if errors.As(err, &apiErr) {
			fmt.Fprintf(os.Stderr, "Error: %v (%s)\n", err, apiErr.UserMessage())
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
