package cmd

import (
	"github.com/spf13/cobra"

	"github.com/manav03panchal/rewind/internal/model"
	"github.com/manav03panchal/rewind/internal/runtime"
	"github.com/manav03panchal/rewind/internal/script"
)

// demoCmd runs the sample countries scenario.
var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the sample countries scenario",
	Long: `Run a fixed scenario over five sample countries: add Mexico, remove it,
add Canada, Austria, China and Argentina, undo, redo, then print the records
and dump the history.

Examples:
  rewind demo
  rewind demo -f json`,
	Args: cobra.NoArgs,
	RunE: runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)
}

// demoScript returns the commands of the demo scenario.
func demoScript() []script.Command {
	countries := model.SampleCountries()
	var cmds []script.Command
	add := func(r model.Record) {
		cmds = append(cmds, script.Command{Op: script.OpAdd, Record: r})
	}
	op := func(o script.Op) {
		cmds = append(cmds, script.Command{Op: o})
	}

	add(countries[0])
	op(script.OpRemove)
	for _, r := range countries[1:] {
		add(r)
	}
	op(script.OpUndo)
	op(script.OpRedo)
	op(script.OpPrint)
	op(script.OpDump)

	for i := range cmds {
		cmds[i].Line = i + 1
	}
	return cmds
}

func runDemo(cmd *cobra.Command, args []string) (err error) {
	defer runtime.RecoverInvariant(&err)

	s := newSession(cmd.Context())
	if err := s.runner.Run(s.ctx, demoScript()); err != nil {
		return err
	}
	return s.finish(false)
}
