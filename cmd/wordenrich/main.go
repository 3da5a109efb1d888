package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"codeberg.org/snonux/wordenrich/internal"
	"codeberg.org/snonux/wordenrich/internal/archive"
	"codeberg.org/snonux/wordenrich/internal/cli"
	"codeberg.org/snonux/wordenrich/internal/dictionary"
	"codeberg.org/snonux/wordenrich/internal/logging"
	"codeberg.org/snonux/wordenrich/internal/pacing"
	"codeberg.org/snonux/wordenrich/internal/processor"
)

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create root command
	rootCmd := cli.CreateRootCommand(flags)

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	// Set the run function
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd.Context(), flags)
	}

	// Execute command
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runCommand(ctx context.Context, flags *cli.Flags) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cli.Resolve(flags)

	logger, err := logging.New(os.Stderr, flags.LogLevel, flags.LogJSON)
	if err != nil {
		return err
	}
	logger, _ = logging.WithRunID(logger)
	logger.Debug().Str("version", internal.Version).Msg("wordenrich starting")

	// Handle --archive flag
	if flags.Archive {
		archivePath, err := archive.ArchiveFile(flags.OutputFile)
		if err != nil {
			return fmt.Errorf("failed to archive output file: %w", err)
		}
		logger.Info().Str("from", flags.OutputFile).Str("to", archivePath).Msg("output file archived")
		return nil
	}

	apiKey := cli.GetAPIKey()
	if apiKey == "" {
		logger.Warn().Msg("no API key set (apiKey environment variable), requests go out unauthenticated")
	}

	client := dictionary.NewClient(&dictionary.Config{
		BaseURL: flags.BaseURL,
		APIKey:  apiKey,
		Timeout: flags.Timeout,
	}, logger)

	pacer, err := pacing.New(flags.PacingMode, flags.Delay)
	if err != nil {
		return err
	}

	proc := processor.NewProcessor(flags, client, logger, processor.WithPacer(pacer))

	result, err := proc.ProcessBatch(ctx)
	if err != nil {
		return err
	}

	// Generate Anki file if requested
	if flags.GenerateAnki {
		exportAnki(proc, result, logger)
	}

	return nil
}

func exportAnki(proc *processor.Processor, result processor.Result, logger zerolog.Logger) {
	outputPath, err := proc.GenerateAnkiFile(result.Records)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to generate Anki file")
		return
	}
	logger.Info().Str("path", outputPath).Msg("Anki export created")
}
