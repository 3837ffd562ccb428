// Package cmd provides the CLI commands for Rewind.
//
// Copyright (c) Manav Panchal
//
// Licensed under the SEGV License, Version 1.0
// See LICENSE file for full license text.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// completionCmd represents the completion command.
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for rewind.

To load completions:

Bash:
  $ source <(rewind completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ rewind completion bash > /etc/bash_completion.d/rewind
  # macOS:
  $ rewind completion bash > $(brew --prefix)/etc/bash_completion.d/rewind

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ rewind completion zsh > "${fpath[1]}/_rewind"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ rewind completion fish | source

  # To load completions for each session, execute once:
  $ rewind completion fish > ~/.config/fish/completions/rewind.fish

PowerShell:
  PS> rewind completion powershell | Out-String | Invoke-Expression
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(os.Stdout)
		case "zsh":
			return rootCmd.GenZshCompletion(os.Stdout)
		case "fish":
			return rootCmd.GenFishCompletion(os.Stdout, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletionWithDesc(os.Stdout)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}
