package cli

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/trainyard/internal/logging"
	"github.com/mesh-intelligence/trainyard/pkg/types"
)

// annotationOperation names the container operation a shell command
// performs. Commands without it are not counted in the operations metric.
const annotationOperation = "operation"

const defaultHistory = 10

var errJournalDisabled = errors.New("journal is disabled (set journal: true in config.yaml)")

// shell is a line-oriented command loop over one container.
type shell struct {
	name     string
	banner   string
	sess     *session
	commands func() []*cobra.Command
	// refresh updates the size gauges after every command.
	refresh func()
}

// newShellCmd wraps a shell in a top-level cobra command that reads from
// the command's input until exit or end of input.
func newShellCmd(use, short string, flags *rootFlags, build func(*session) (*shell, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := newSession(cmd, flags, use)
			if err != nil {
				return err
			}
			defer sess.close()

			sh, err := build(sess)
			if err != nil {
				return sysErr(err)
			}
			return sh.run(cmd.Context(), cmd.InOrStdin())
		},
	}
}

func (sh *shell) run(ctx context.Context, in io.Reader) error {
	if ctx == nil {
		ctx = context.Background()
	}
	out := sh.sess.out
	fmt.Fprintf(out, "=== %s ===\nType \"help\" for commands, \"exit\" to quit.\n", sh.banner)
	sh.refresh()

	scanner := bufio.NewScanner(in)
	for !sh.sess.done {
		fmt.Fprintf(out, "%s> ", sh.name)
		if !scanner.Scan() {
			fmt.Fprintln(out)
			break
		}
		args, err := splitLine(scanner.Text())
		if err != nil {
			fmt.Fprintf(out, "[Error] %s\n", err)
			continue
		}
		if len(args) == 0 {
			continue
		}
		sh.execute(ctx, args)
	}
	if err := scanner.Err(); err != nil {
		return sysErr(fmt.Errorf("read input: %w", err))
	}
	fmt.Fprintln(out, "Goodbye!")
	return nil
}

// execute runs one line through a fresh command tree. Every failure is
// reported and the loop goes on.
func (sh *shell) execute(ctx context.Context, args []string) {
	line := strings.Join(args, " ")
	cmd, err := sh.lineCmd(args).ExecuteContextC(ctx)
	if cmd != nil {
		if op, ok := cmd.Annotations[annotationOperation]; ok {
			sh.sess.metrics.Observe(sh.name, op, err)
		}
	}
	sh.refresh()
	sh.sess.checkJournal(ctx)

	if err != nil {
		sh.sess.log.Warn(ctx, "command failed", logging.String("command", line), logging.Any("args", args), logging.Err(err))
		sh.report(err)
		return
	}
	sh.sess.log.Debug(ctx, "command executed", logging.String("command", line), logging.Int("argc", len(args)))
}

func (sh *shell) report(err error) {
	var capErr *types.CapacityError
	if errors.As(err, &capErr) {
		fmt.Fprintf(sh.sess.out, "[Overweight] %s\n", capErr)
		return
	}
	fmt.Fprintf(sh.sess.out, "[Error] %s\n", err)
}

func (sh *shell) lineCmd(args []string) *cobra.Command {
	root := &cobra.Command{
		Use:           sh.name,
		Short:         sh.banner,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetOut(sh.sess.out)
	root.SetErr(sh.sess.out)
	root.SetArgs(args)

	for _, c := range append(sh.commands(), sh.commonCommands()...) {
		// Arguments such as "-5" must reach validation, not the flag parser.
		c.DisableFlagParsing = true
		root.AddCommand(c)
	}
	return root
}

func (sh *shell) commonCommands() []*cobra.Command {
	s := sh.sess
	return []*cobra.Command{
		{
			Use:   "history [n]",
			Short: "Show the last n journal events (default 10)",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if s.journal == nil {
					return errJournalDisabled
				}
				n := defaultHistory
				if len(args) == 1 {
					v, err := strconv.Atoi(args[0])
					if err != nil || v <= 0 {
						return fmt.Errorf("history: %q is not a positive number", args[0])
					}
					n = v
				}
				events, err := s.journal.Recent(n)
				if err != nil {
					return err
				}
				s.render.History(events)
				return nil
			},
		},
		{
			Use:   "stats",
			Short: "Show operation counters and sizes",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				lines, err := s.metrics.Snapshot()
				if err != nil {
					return err
				}
				s.render.Lines(lines)
				if s.journal == nil {
					return nil
				}
				counts, err := s.journal.CountByKind()
				if err != nil {
					return err
				}
				kinds := lo.Keys(counts)
				sort.Strings(kinds)
				s.render.Lines(lo.Map(kinds, func(kind string, _ int) string {
					return fmt.Sprintf("events{kind=%q} %d", kind, counts[kind])
				}))
				return nil
			},
		},
		{
			Use:   "export <path>",
			Short: "Write the journal to a JSONL file",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if s.journal == nil {
					return errJournalDisabled
				}
				n, err := s.journal.Export(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(s.out, "Exported %d events to %s\n", n, args[0])
				return nil
			},
		},
		{
			Use:     "exit",
			Aliases: []string{"quit"},
			Short:   "Leave the shell",
			Args:    cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				s.done = true
				return nil
			},
		},
	}
}

// splitLine splits a command line on spaces. Double quotes group words, so
// `load T-01 "Steel Beams" Industrial 120` yields five arguments.
func splitLine(line string) ([]string, error) {
	r := csv.NewReader(strings.NewReader(line))
	r.Comma = ' '
	r.LazyQuotes = true
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1

	fields, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("parse line: %w", err)
	}
	args := lo.Compact(fields)
	if len(args) == 0 {
		return nil, nil
	}
	return args, nil
}

// parseInt parses a numeric argument; a malformed value is reported as
// sentinel so it classifies like the domain's own validation error.
func parseInt(arg, what string, sentinel error) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("%s %q is not a number: %w", what, arg, sentinel)
	}
	return n, nil
}

func operation(name string) map[string]string {
	return map[string]string{annotationOperation: name}
}
