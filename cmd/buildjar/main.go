// Package main implements the buildjar CLI.
package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"buildjar/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "buildjar",
	Short: "Programmatic compiler invocation wrapper",
	Long:  `buildjar assembles compiler invocations from structured arguments and reports structured results instead of exit codes and stderr text`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(compileCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("verbose", false, "enable debug logging")

	cobra.OnInitialize(func() {
		if verbose, err := rootCmd.PersistentFlags().GetBool("verbose"); err == nil && verbose {
			log.SetLevel(log.DebugLevel)
		}
	})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func useColor(cmd *cobra.Command, f *os.File) bool {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false
	}
	return colorFlag == "on" || (colorFlag == "auto" && isTerminal(f))
}
