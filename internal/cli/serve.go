package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/andy/quotepad/internal/web"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the editor to a browser",
	Long: `Serve the interactive editor over HTTP. Edits made in the browser are saved
and exported exactly like edits made in the terminal editor.

Examples:
  quotepad serve
  quotepad serve --listen :9000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if _, err := appInstance.Editor.Open(ctx); err != nil {
			return fmt.Errorf("failed to open invoice: %w", err)
		}

		srv, err := web.NewServer(appInstance.Editor, appInstance.Profile)
		if err != nil {
			return err
		}

		addr, _ := cmd.Flags().GetString("listen")
		if addr == "" {
			addr = appInstance.Config.Web.Listen
		}
		fmt.Printf("Editor running at http://%s (Ctrl+C to stop)\n", addr)
		return srv.ListenAndServe(ctx, addr)
	},
}

func init() {
	serveCmd.Flags().String("listen", "", "Address to listen on (defaults to web.listen from the config)")
}
