package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/chunkgraph/internal/server"
)

// serveCommand creates the serve command, which exposes the pipeline over
// HTTP until interrupted.
func (c *CLI) serveCommand() *cobra.Command {
	addr := defaultAddr

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			srv := server.New(c.newRunner(), logger)
			return srv.ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", addr, "listen address")

	return cmd
}
