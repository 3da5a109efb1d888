package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/wordenrich/internal"
)

// apiKeyEnv is the environment variable holding the dictionary API key.
const apiKeyEnv = "apiKey"

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "wordenrich",
		Short: "Dictionary metadata enricher for word lists",
		Long: `wordenrich reads a JSON array of words and looks every word up in the
Merriam-Webster Collegiate dictionary, one request per second. Pronunciation,
part of speech and short definitions of each word found are written to a new
JSON file. Words without an entry are skipped.

The API key is read from the apiKey environment variable.

Examples:
  wordenrich                                   # words.json -> updated_words.json
  wordenrich -i list.json -o enriched.json     # custom paths
  wordenrich --anki --deck-name "GRE Words"    # also export an Anki deck
  wordenrich --archive                         # move an old output file aside`,
		Args:          cobra.NoArgs,
		Version:       internal.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Set up flags
	setupFlags(rootCmd, flags)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.wordenrich.yaml)")

	// Local flags
	cmd.Flags().StringVarP(&flags.InputFile, "input", "i", flags.InputFile, "Word list (JSON array of strings)")
	cmd.Flags().StringVarP(&flags.OutputFile, "output", "o", flags.OutputFile, "Output file, must not exist yet")
	cmd.Flags().BoolVar(&flags.Archive, "archive", false, "Move an existing output file into archive/ and exit")

	// Dictionary flags
	cmd.Flags().StringVar(&flags.BaseURL, "base-url", flags.BaseURL, "Dictionary entry endpoint")
	cmd.Flags().DurationVar(&flags.Delay, "delay", flags.Delay, "Pause after every lookup")
	cmd.Flags().StringVar(&flags.PacingMode, "pacing", flags.PacingMode, "Pacing mode: fixed (pause after every lookup) or interval (minimum spacing between lookups)")
	cmd.Flags().DurationVar(&flags.Timeout, "timeout", flags.Timeout, "Per-request timeout (0 = no timeout)")

	// Logging flags
	cmd.Flags().StringVar(&flags.LogLevel, "log-level", flags.LogLevel, "Log level: debug, info, warn, error")
	cmd.Flags().BoolVar(&flags.LogJSON, "log-json", false, "Write log lines as JSON")

	// Anki flags
	cmd.Flags().BoolVar(&flags.GenerateAnki, "anki", false, "Export the enriched words as an Anki deck (APKG format by default, use --anki-csv for CSV)")
	cmd.Flags().BoolVar(&flags.AnkiCSV, "anki-csv", false, "Generate CSV instead of APKG when using --anki")
	cmd.Flags().StringVar(&flags.DeckName, "deck-name", flags.DeckName, "Deck name for APKG export")

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag("input.file", cmd.Flags().Lookup("input"))
	viper.BindPFlag("output.file", cmd.Flags().Lookup("output"))
	viper.BindPFlag("dictionary.base_url", cmd.Flags().Lookup("base-url"))
	viper.BindPFlag("dictionary.timeout", cmd.Flags().Lookup("timeout"))
	viper.BindPFlag("pacing.delay", cmd.Flags().Lookup("delay"))
	viper.BindPFlag("pacing.mode", cmd.Flags().Lookup("pacing"))
	viper.BindPFlag("log.level", cmd.Flags().Lookup("log-level"))
	viper.BindPFlag("log.json", cmd.Flags().Lookup("log-json"))
	viper.BindPFlag("anki.deck_name", cmd.Flags().Lookup("deck-name"))
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".wordenrich" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".wordenrich")
	}

	// Environment variables
	viper.SetEnvPrefix("WORDENRICH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// Resolve copies config file and environment values into flags. Command
// line values win because viper resolves a changed bound flag first.
func Resolve(flags *Flags) {
	if viper.IsSet("input.file") {
		flags.InputFile = viper.GetString("input.file")
	}
	if viper.IsSet("output.file") {
		flags.OutputFile = viper.GetString("output.file")
	}
	if viper.IsSet("dictionary.base_url") {
		flags.BaseURL = viper.GetString("dictionary.base_url")
	}
	if viper.IsSet("dictionary.timeout") {
		flags.Timeout = viper.GetDuration("dictionary.timeout")
	}
	if viper.IsSet("pacing.delay") {
		flags.Delay = viper.GetDuration("pacing.delay")
	}
	if viper.IsSet("pacing.mode") {
		flags.PacingMode = viper.GetString("pacing.mode")
	}
	if viper.IsSet("log.level") {
		flags.LogLevel = viper.GetString("log.level")
	}
	if viper.IsSet("log.json") {
		flags.LogJSON = viper.GetBool("log.json")
	}
	if viper.IsSet("anki.deck_name") {
		flags.DeckName = viper.GetString("anki.deck_name")
	}
}

// GetAPIKey retrieves the dictionary API key from environment or config
func GetAPIKey() string {
	// First check the plain environment variable
	if key := os.Getenv(apiKeyEnv); key != "" {
		return key
	}

	// Then WORDENRICH_API_KEY or the config file
	if key := viper.GetString("api_key"); key != "" {
		return key
	}
	return viper.GetString("dictionary.api_key")
}
