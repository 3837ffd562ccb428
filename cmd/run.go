package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/manav03panchal/rewind/internal/errors"
	"github.com/manav03panchal/rewind/internal/runtime"
	"github.com/manav03panchal/rewind/internal/script"
)

var (
	runKeepGoing bool
	runStats     bool
)

// runCmd executes an edit script.
var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Execute an edit script",
	Long: `Execute a line-oriented edit script against a fresh collection.

Reads the named file, or standard input when no file (or '-') is given.
When standard input is a terminal, an interactive prompt is shown and
invalid lines are reported without ending the session.

Commands:
  add <name> <category> <magnitude>   Append a record (quote fields with spaces)
  remove                              Remove the last record
  undo                                Undo the last edit
  redo                                Redo the last undone edit
  print                               Show the records
  dump                                Show the records and the full history
  history                             Show the history with its cursor (alias: log)
  snapshot [label]                    Save the records to the snapshot store

Lines starting with '#' are comments.

Examples:
  rewind run edits.rw
  rewind run --keep-going edits.rw
  printf 'add A x 1\nundo\nprint\n' | rewind run -f json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	runCmd.Flags().BoolVarP(&runKeepGoing, "keep-going", "k", false,
		"Report invalid lines and continue")
	runCmd.Flags().BoolVar(&runStats, "stats", false,
		"Print a summary when the script ends")
	rootCmd.AddCommand(runCmd)
}

func runScript(cmd *cobra.Command, args []string) (err error) {
	defer runtime.RecoverInvariant(&err)

	in := cmd.InOrStdin()
	name := "stdin"
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return errors.NewUserErrorWithField("file", args[0], "Cannot open script",
				"Check the path and try again").WithCause(err)
		}
		defer f.Close()
		in = f
		name = args[0]
	}

	interactive := name == "stdin" && isTerminal(in)
	keepGoing := runKeepGoing || interactive

	var opts []script.Option
	if interactive && ctx.IsCLI() {
		prompt := cmd.ErrOrStderr()
		opts = append(opts, script.WithPrompt(func() {
			fmt.Fprint(prompt, "rewind> ")
		}))
	}

	s := newSession(cmd.Context(), opts...)
	s.logger.Debug("running script", "source", name, "interactive", interactive)

	onError := func(err error) {
		if ctx.IsJSON() {
			ctx.JSONFormatter().PrintError(err, runtime.FormatError(err), runtime.GetSuggestion(err))
			return
		}
		ctx.CLIFormatter().Error(runtime.FormatError(err))
	}

	if err := s.runner.RunReader(s.ctx, in, keepGoing, onError); err != nil {
		return err
	}
	return s.finish(runStats || interactive)
}

// isTerminal reports whether r is an interactive terminal.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
