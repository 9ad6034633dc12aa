package main

import (
	"os"

	ragdcmder "github.com/primefold/ragd/cmd/ragd"
)

func main() {
	cmd := ragdcmder.NewRagdCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
