package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var ErrUnterminatedQuote = errors.New("unterminated quote")

const shellPrompt = "clinicdesk> "

func newShellCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Run commands interactively with undo history",
		Long: `Start an interactive session. Every clinicdesk command can be typed
without the program name, and undo/redo reach back to the start of the session.

Type "exit" or press Ctrl-D to leave.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunShell(cmd.Context(), app, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
}

// RunShell reads command lines from in until EOF or "exit". Failed lines
// are reported on errOut and do not end the session.
func RunShell(ctx context.Context, app *App, in io.Reader, out, errOut io.Writer) error {
	interactive := isTerminal(in)
	scanner := bufio.NewScanner(in)

	for {
		if interactive {
			fmt.Fprint(out, shellPrompt)
		}
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if line == "exit" || line == "quit" {
			return nil
		}

		args, err := SplitArgs(line)
		if err != nil {
			fmt.Fprintln(errOut, "Error:", err)
			continue
		}
		if args[0] == "shell" {
			fmt.Fprintln(errOut, "Error: already in a shell")
			continue
		}

		root := NewRootCmd(app)
		root.SetArgs(args)
		root.SetIn(in)
		root.SetOut(out)
		root.SetErr(errOut)
		if err := root.ExecuteContext(ctx); err != nil {
			fmt.Fprintln(errOut, "Error:", err)
		}

		if err := ctx.Err(); err != nil {
			return err
		}
	}

	if interactive {
		fmt.Fprintln(out)
	}
	return scanner.Err()
}

// SplitArgs splits a command line into words. Single and double quotes
// group words and a backslash escapes the next character outside single quotes.
func SplitArgs(line string) ([]string, error) {
	var (
		args    []string
		current strings.Builder
		inWord  bool
		quote   rune
		escaped bool
	)

	for _, r := range line {
		switch {
		case escaped:
			current.WriteRune(r)
			escaped = false
		case r == '\\' && quote != '\'':
			escaped = true
			inWord = true
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '"' || r == '\'':
			quote = r
			inWord = true
		case r == ' ' || r == '\t':
			if inWord {
				args = append(args, current.String())
				current.Reset()
				inWord = false
			}
		default:
			current.WriteRune(r)
			inWord = true
		}
	}

	if quote != 0 || escaped {
		return nil, ErrUnterminatedQuote
	}
	if inWord {
		args = append(args, current.String())
	}
	return args, nil
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
