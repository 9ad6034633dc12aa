// Package ragdcmder
package ragdcmder

import (
	"github.com/spf13/cobra"

	askcmder "github.com/primefold/ragd/cmd/ragd/ask"
	servecmder "github.com/primefold/ragd/cmd/ragd/serve"
)

const ragdLongDesc string = `Ragd answers customer questions from a FAQ knowledge base using
retrieval-augmented generation, with answer caching in front.

Run the service using:
  ragd serve           Run the query API server
  ragd ask "question"  Ask a running server a question`

const ragdShortDesc string = "Ragd - FAQ answering service"

func NewRagdCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ragd",
		Short: ragdShortDesc,
		Long:  ragdLongDesc,
	}

	// Global flags
	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")

	// Add subcommands
	cmd.AddCommand(servecmder.NewServeCmd())
	cmd.AddCommand(askcmder.NewAskCmd())

	return cmd
}
