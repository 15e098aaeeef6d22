// celebration serves a birthday page with a balloon-pop mini-game, in the
// terminal, over SSH, and in the browser.
//
// Usage:
//
//	celebration play         - Play in this terminal
//	celebration serve        - Host the page over SSH and HTTP
//	celebration config       - Print the effective game configuration
//	celebration schema       - Print the JSON Schema of the config file
//	celebration journal      - Show recent session events
//
// Global flags:
//
//	--seed <value>       - Set RNG seed for reproducible sessions
//	--config <path>      - Use a custom minigame.yaml
//	--db <path>          - Set journal path (default: ~/.celebration/journal.db)
//	--log-level <level>  - debug, info, warn or error
//	--debug              - Debug logging (to ~/.celebration/debug.log in play)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/celebration/internal/storage"
)

var (
	flagSeed       int64
	flagConfigPath string
	flagDBPath     string
	flagLogLevel   string
	flagDebug      bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "celebration",
	Short: "A birthday page with a balloon-pop mini-game",
	Long: `celebration shows a birthday greeting with a small game: balloons
float up, and you pop them before they drift away. Pop 30 to win.

Available commands:
  play     - Play in this terminal
  serve    - Host the page over SSH and HTTP
  config   - Print the effective game configuration
  schema   - Print the JSON Schema of the config file
  journal  - Show recent session events

Examples:
  celebration play
  celebration play --seed 42
  celebration serve --ssh :2222 --http :8080
  celebration journal --limit 50`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "Path to custom minigame.yaml")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to session journal database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(journalCmd)
}
