package history

import (
	"fmt"
	"io"
	"math/big"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
)

// Dump writes a free-text rendering of the log to w. The format is meant
// for people reading a debug session and is not stable.
func (l *Log) Dump(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "history: current=%d max=%d entries=%d\n",
		l.current, l.max, len(l.actions)); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for i, a := range l.actions {
		cursor := " "
		if i == l.current {
			cursor = ">"
		}
		if a.Record == nil {
			fmt.Fprintf(tw, "%s %d\t%s\t\t\t\n", cursor, i, a.Kind)
			continue
		}
		fmt.Fprintf(tw, "%s %d\t%s\t%s\t%s\t%s\n", cursor, i, a.Kind,
			a.Record.Name, a.Record.Category, humanize.BigComma(new(big.Int).SetUint64(a.Record.Magnitude)))
	}
	return tw.Flush()
}
