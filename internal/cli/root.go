package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	port        string
	configPath  string
	catalogPath string
)

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	envPort := os.Getenv("PORT")
	if envPort == "" {
		envPort = "8080"
	}
	envConfig := os.Getenv("CONFIG_PATH")
	if envConfig == "" {
		envConfig = "config/config.yaml"
	}
	envCatalog := os.Getenv("CATALOG_PATH")

	cmd := &cobra.Command{
		Use:   "planty-quiz-service",
		Short: "Plant flashcard catalog and quiz service",
		Long: "Serves the deduplicated plant catalog and runs multiple-choice\n" +
			"quizzes (identify, recommend, avoid) over websockets.",
	}

	cmd.PersistentFlags().StringVar(&port, "port", envPort, "port the websocket and catalog endpoints listen on")
	cmd.PersistentFlags().StringVar(&configPath, "config", envConfig, "path to YAML config")
	cmd.PersistentFlags().StringVar(&catalogPath, "catalog", envCatalog, "plant catalog JSON file (overrides config; ignored when Postgres is configured)")
	cmd.AddCommand(NewStartCmd(&configPath, &port, &catalogPath))
	cmd.AddCommand(NewMigrateCmd(&configPath))
	return cmd
}
