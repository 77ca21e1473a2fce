package cli

import (
	"context"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

var (
	ErrUnknownCommand  = errors.New("unknown command")
	ErrMissingArgument = errors.New("missing argument")
)

const HelpText = `Usage: fplcheck <command> [args]

Commands:
  fixtures        Started fixtures of the gameweek with their state flags
  live            Sample of the live stats and fixture payloads
  status          How the classifier sees players right now
  subs            Substitutions inferred from minutes played
  squad           Players flagged as doubtful or unavailable
  player <name>   Fixture, live stats and classification for one player
  entry <id>      A fantasy entry's picks, auto-subs and live points
  help            Show this message

Environment:
  FPL_GAMEWEEK           Gameweek to report on (default: current)
  FPL_BASE_URL           API base URL
  FPL_SAMPLE_LIMIT       Players scanned by status and subs
  FPL_SUB_SLACK_MINUTES  Minutes a player may trail the match clock
  LOG_LEVEL, LOG_FORMAT  Logging on stderr
`

// Reports is the set of reports the commands render.
type Reports interface {
	FixtureStates(ctx context.Context) (string, error)
	LiveSample(ctx context.Context) (string, error)
	PlayerStatusReport(ctx context.Context) (string, error)
	SubstitutionReport(ctx context.Context) (string, error)
	AvailabilityReport(ctx context.Context) (string, error)
	AnalyzePlayer(ctx context.Context, name string) (string, error)
	EntryReport(ctx context.Context, entryID int) (string, error)
}

type Handler struct {
	reports Reports
}

func NewHandler(reports Reports) *Handler {
	return &Handler{reports: reports}
}

// HandleCommand runs one command and returns the text to print. An unknown
// command returns the help text along with ErrUnknownCommand.
func (h *Handler) HandleCommand(ctx context.Context, command string, args []string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(command)) {
	case "", "help", "-h", "--help":
		return HelpText, nil
	case "fixtures":
		return h.reports.FixtureStates(ctx)
	case "live":
		return h.reports.LiveSample(ctx)
	case "status":
		return h.reports.PlayerStatusReport(ctx)
	case "subs":
		return h.reports.SubstitutionReport(ctx)
	case "squad":
		return h.reports.AvailabilityReport(ctx)
	case "player":
		return h.handlePlayer(ctx, args)
	case "entry":
		return h.handleEntry(ctx, args)
	default:
		return HelpText, errors.Wrapf(ErrUnknownCommand, "%q", command)
	}
}

func (h *Handler) handlePlayer(ctx context.Context, args []string) (string, error) {
	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" {
		return "Please provide a player name. Usage: fplcheck player <name>\n", ErrMissingArgument
	}
	return h.reports.AnalyzePlayer(ctx, name)
}

func (h *Handler) handleEntry(ctx context.Context, args []string) (string, error) {
	if len(args) == 0 {
		return "Please provide an entry id. Usage: fplcheck entry <id>\n", ErrMissingArgument
	}
	entryID, err := strconv.Atoi(args[0])
	if err != nil || entryID <= 0 {
		return "Entry id must be a positive number. Usage: fplcheck entry <id>\n",
			errors.Wrapf(ErrMissingArgument, "invalid entry id %q", args[0])
	}
	return h.reports.EntryReport(ctx, entryID)
}
