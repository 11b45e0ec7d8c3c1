package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/trainyard/internal/journal"
	"github.com/mesh-intelligence/trainyard/internal/logging"
	"github.com/mesh-intelligence/trainyard/internal/observability"
	"github.com/mesh-intelligence/trainyard/internal/report"
	"github.com/mesh-intelligence/trainyard/pkg/types"
)

// session carries what every shell needs for one run: config, output,
// logger, metrics and the event journal.
type session struct {
	cfg     types.Config
	out     io.Writer
	log     logging.Logger
	metrics *observability.Collector
	journal *journal.Journal
	render  *report.Renderer

	done          bool
	journalFailed bool
}

func newSession(cmd *cobra.Command, flags *rootFlags, structure string) (*session, error) {
	_, cfg, err := resolveConfig(flags)
	if err != nil {
		return nil, err
	}

	log := logging.New(logging.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Writer: cmd.ErrOrStderr(),
	}).With(logging.String("structure", structure))

	// Each session gets its own registry so repeated runs in one process
	// start from zero.
	metrics, err := observability.NewCollector(prometheus.NewRegistry())
	if err != nil {
		return nil, sysErr(fmt.Errorf("register metrics: %w", err))
	}

	s := &session{
		cfg:     cfg,
		out:     cmd.OutOrStdout(),
		log:     log,
		metrics: metrics,
		render:  report.New(cmd.OutOrStdout(), cfg.TableStyle),
	}
	if cfg.Journal {
		j, err := journal.Open(journal.DefaultDSN)
		if err != nil {
			return nil, sysErr(err)
		}
		s.journal = j
	}
	return s, nil
}

// listener fans container events out to the debug log and the journal.
func (s *session) listener() types.Listener {
	ls := types.Listeners{
		types.ListenerFunc(func(e types.Event) {
			s.log.Debug(context.Background(), "event",
				logging.String("kind", e.Kind),
				logging.String("subject", e.Subject),
				logging.String("detail", e.Detail))
		}),
	}
	if s.journal != nil {
		ls = append(ls, s.journal)
	}
	return ls
}

// checkJournal logs the first journal write failure once.
func (s *session) checkJournal(ctx context.Context) {
	if s.journal == nil || s.journalFailed {
		return
	}
	if err := s.journal.Err(); err != nil {
		s.journalFailed = true
		s.log.Error(ctx, "journal write failed", logging.Err(err))
	}
}

func (s *session) close() error {
	if s.journal == nil {
		return nil
	}
	return s.journal.Close()
}
