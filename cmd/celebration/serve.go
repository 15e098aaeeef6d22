package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/celebration/internal/platform/tui"
	"github.com/vovakirdan/celebration/internal/platform/web"
)

var (
	flagSSHAddr     string
	flagHTTPAddr    string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Host the page over SSH and HTTP",
	Long: `Start the SSH server and the web server together.

Every SSH connection and every browser tab gets its own independent
session. Nothing is shared between visitors.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.celebration/host_key

Pass an empty address to turn a listener off.

Examples:
  celebration serve                         # SSH on :23234, HTTP on :8080
  celebration serve --ssh :2222             # SSH on port 2222
  celebration serve --ssh ""                # Web only
  celebration serve --host-key ./host_key   # Use specific host key

Visitors connect with:
  ssh localhost -p 23234
  http://localhost:8080/`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHTTPAddr, "http", ":8080", "Web server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting SSH clients")
}

func runServe(_ *cobra.Command, _ []string) {
	if flagSSHAddr == "" && flagHTTPAddr == "" {
		fmt.Fprintln(os.Stderr, "Error: nothing to serve, both --ssh and --http are empty")
		os.Exit(1)
	}

	gameCfg, err := loadGameConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, closer, err := newLogger("celebration", false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()

	recorder, journal := openRecorder(logger)
	if journal != nil {
		defer journal.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	if flagSSHAddr != "" {
		sshCfg := tui.DefaultSSHServerConfig()
		sshCfg.Address = flagSSHAddr
		sshCfg.HostKeyPath = flagHostKey
		if flagIdleTimeout > 0 {
			sshCfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
		}
		sshCfg.Game = gameCfg
		sshCfg.Seed = flagSeed

		sshServer, err := tui.NewSSHServer(sshCfg, recorder, logger.WithPrefix("ssh"))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		g.Go(func() error { return sshServer.Serve(ctx) })
	}

	if flagHTTPAddr != "" {
		webCfg := web.DefaultConfig()
		webCfg.Address = flagHTTPAddr
		webCfg.Game = gameCfg
		webCfg.Seed = flagSeed

		webServer := web.NewServer(webCfg, recorder, logger.WithPrefix("web"))
		g.Go(func() error { return webServer.Serve(ctx) })
	}

	logger.Info("press Ctrl+C to stop")

	if err := g.Wait(); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
