package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"fitmeal/internal/infra"
)

var (
	verbose bool
	asJSON  bool
	logger  = infra.NopLogger()
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "fitmeal",
	Short: "Calorie targets and AI meal plans from the terminal",
	Long: `fitmeal estimates daily calorie needs with the Mifflin-St Jeor equation and
asks Gemini for a one-day meal plan that fits the target.

Numbers are estimates only. Consult a medical professional before starting any diet.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()
		if verbose {
			l := zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}).
				Level(zerolog.DebugLevel).
				With().Timestamp().Str("cmd", cmd.Name()).Logger()
			logger = &l
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log to stderr")
	rootCmd.PersistentFlags().BoolVar(&asJSON, "json", false, "Print JSON instead of the dashboard")

	rootCmd.AddCommand(estimateCmd)
	rootCmd.AddCommand(planCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
