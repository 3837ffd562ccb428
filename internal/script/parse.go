package script

import (
	"bufio"
	"io"
	"strings"

	"github.com/manav03panchal/rewind/internal/errors"
	"github.com/manav03panchal/rewind/internal/model"
	"github.com/manav03panchal/rewind/internal/validate"
)

// Parse reads a whole script. It stops at the first invalid line.
func Parse(r io.Reader) ([]Command, error) {
	var cmds []Command
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		cmd, ok, err := ParseLine(scanner.Text(), line)
		if err != nil {
			return nil, err
		}
		if ok {
			cmds = append(cmds, cmd)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.NewSystemErrorWithOp("read script", "read failed", err)
	}
	return cmds, nil
}

// ParseLine parses one script line. It returns ok=false for blank lines
// and comments.
func ParseLine(text string, line int) (Command, bool, error) {
	text = strings.TrimSpace(text)
	if text == "" || strings.HasPrefix(text, "#") {
		return Command{}, false, nil
	}

	tokens, err := tokenize(text)
	if err != nil {
		return Command{}, false, lineError(err, line)
	}
	if len(tokens) == 0 {
		return Command{}, false, nil
	}

	op, known := aliases[strings.ToLower(tokens[0])]
	if !known {
		return Command{}, false, errors.NewUserErrorWithField("command", tokens[0],
			"Unknown command", "").WithCause(errors.ErrUnknownCommand).AtLine(line)
	}

	cmd := Command{Op: op, Line: line}
	args := tokens[1:]

	switch op {
	case OpAdd:
		rec, err := parseRecord(args)
		if err != nil {
			return Command{}, false, lineError(err, line)
		}
		cmd.Record = rec

	case OpSnapshot:
		label := validate.SanitizeField(strings.Join(args, " "))
		if err := validate.SnapshotLabel(label); err != nil {
			return Command{}, false, lineError(err, line)
		}
		cmd.Label = label

	default:
		if len(args) > 0 {
			return Command{}, false, errors.NewUserErrorWithField("arguments", strings.Join(args, " "),
				string(op)+" takes no arguments", "").WithCause(errors.ErrTooManyArguments).AtLine(line)
		}
	}

	return cmd, true, nil
}

// parseRecord builds a record from "<name> <category> <magnitude>".
func parseRecord(args []string) (model.Record, error) {
	switch {
	case len(args) < 3:
		return model.Record{}, errors.NewUserError(
			"add needs a name, a category and a magnitude", "").WithCause(errors.ErrMissingArgument)
	case len(args) > 3:
		return model.Record{}, errors.NewUserErrorWithField("arguments", strings.Join(args[3:], " "),
			"add takes exactly three fields", "").WithCause(errors.ErrTooManyArguments)
	}

	magnitude, err := validate.ParseMagnitude(args[2])
	if err != nil {
		return model.Record{}, err
	}
	rec := model.NewRecord(validate.SanitizeField(args[0]), validate.SanitizeField(args[1]), magnitude)
	if err := validate.Record(rec); err != nil {
		return model.Record{}, err
	}
	return rec, nil
}

// lineError tags a user error with its line number.
func lineError(err error, line int) error {
	if ue, ok := errors.AsUserError(err); ok {
		return ue.AtLine(line)
	}
	return errors.Wrapf(err, "line %d", line)
}

// tokenize splits a line on whitespace, honouring single and double quotes.
// An empty quoted string yields an empty token.
func tokenize(input string) ([]string, error) {
	var tokens []string
	var current strings.Builder
	inQuote := false
	quoted := false
	quoteChar := rune(0)

	flush := func() {
		if current.Len() > 0 || quoted {
			tokens = append(tokens, current.String())
			current.Reset()
		}
		quoted = false
	}

	for _, r := range input {
		if (r == '"' || r == '\'') && !inQuote {
			inQuote = true
			quoted = true
			quoteChar = r
			continue
		}
		if r == quoteChar && inQuote {
			inQuote = false
			quoteChar = 0
			continue
		}
		if (r == ' ' || r == '\t') && !inQuote {
			flush()
			continue
		}
		current.WriteRune(r)
	}

	if inQuote {
		return nil, errors.NewUserError("Unterminated quote", "").WithCause(errors.ErrUnterminatedQuote)
	}
	flush()
	return tokens, nil
}
