package main

import (
	"os"

	coachlenscmder "github.com/coachlens/coachlens/cmd/coachlens"
)

func main() {
	cmd := coachlenscmder.NewCoachlensCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
