package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/deemkeen/herald/domain"
	"github.com/deemkeen/herald/util"
)

// Session interface represents the minimal session requirements for CLI operations
type Session interface {
	io.Reader
	io.Writer
}

// API is the part of the REST client the commands use.
type API interface {
	Broadcasts(ctx context.Context) ([]domain.Broadcast, error)
	Broadcast(ctx context.Context, id int64) (domain.Broadcast, error)
	BroadcastMarkAsRead(ctx context.Context, id int64) error
	Status(ctx context.Context) error
}

// Handler processes CLI commands
type Handler struct {
	session  Session
	api      API
	user     domain.User
	output   *Output
	jsonMode bool
	conf     *util.AppConfig
}

func NewHandler(s Session, api API, user domain.User, conf *util.AppConfig) *Handler {
	return &Handler{
		session: s,
		api:     api,
		user:    user,
		conf:    conf,
	}
}

// Execute parses and executes a CLI command
func (h *Handler) Execute(ctx context.Context, args []string) error {
	args, h.jsonMode = parseGlobalFlags(args)
	h.output = NewOutput(h.session, h.jsonMode)

	if len(args) == 0 {
		return h.showHelp()
	}

	cmd := strings.ToLower(args[0])
	cmdArgs := args[1:]

	switch cmd {
	case "broadcasts", "ls":
		return h.handleBroadcasts(ctx, cmdArgs)
	case "broadcast", "show":
		return h.handleBroadcast(ctx, cmdArgs)
	case "mark":
		return h.handleMark(ctx, cmdArgs)
	case "feed":
		return h.handleFeed(ctx, cmdArgs)
	case "status":
		return h.handleStatus(ctx)
	case "--help", "-h", "help":
		return h.showHelp()
	default:
		err := fmt.Errorf("unknown command: %s", cmd)
		h.output.Error(err)
		return err
	}
}

// parseGlobalFlags extracts global flags like --json from args
func parseGlobalFlags(args []string) ([]string, bool) {
	jsonMode := false
	var filtered []string

	for _, arg := range args {
		switch arg {
		case "--json", "-j":
			jsonMode = true
		default:
			filtered = append(filtered, arg)
		}
	}

	return filtered, jsonMode
}

func (h *Handler) showHelp() error {
	if h.output.IsJSON() {
		h.output.JSON(HelpResponse{
			Version: util.GetVersion(),
			Commands: []HelpCommand{
				{
					Name:        "broadcasts",
					Description: "List broadcasts",
					Usage:       "broadcasts [-a] [-n <count>]",
					Flags:       []string{"-a: include archived broadcasts", "-n <count>: limit number of broadcasts"},
				},
				{
					Name:        "broadcast",
					Description: "Show one broadcast",
					Usage:       "broadcast <id>",
				},
				{
					Name:        "mark",
					Description: "Mark a broadcast as read",
					Usage:       "mark <id>",
				},
				{
					Name:        "feed",
					Description: "Export broadcasts as a feed",
					Usage:       "feed [--atom]",
					Flags:       []string{"--atom: Atom instead of RSS"},
				},
				{
					Name:        "status",
					Description: "Check that the API answers",
					Usage:       "status",
				},
				{
					Name:        "help",
					Description: "Show this help message",
					Usage:       "help",
				},
			},
			GlobalFlags: []string{
				"--json, -j: output in JSON format",
			},
		})
		return nil
	}

	h.output.Println(util.GetNameAndVersion() + " - broadcast console")
	h.output.Println("")
	h.output.Println("Usage: ssh -p <port> <server> <command> [options]")
	h.output.Println("")
	h.output.Println("Commands:")
	h.output.Println("  broadcasts            List active broadcasts")
	h.output.Println("  broadcasts -a         Include archived broadcasts")
	h.output.Println("  broadcasts -n <N>     Limit to N broadcasts")
	h.output.Println("  broadcast <id>        Show one broadcast")
	h.output.Println("  mark <id>             Mark a broadcast as read")
	h.output.Println("  feed                  Export broadcasts as RSS")
	h.output.Println("  feed --atom           Export broadcasts as Atom")
	h.output.Println("  status                Check that the API answers")
	h.output.Println("  help                  Show this help message")
	h.output.Println("")
	h.output.Println("Global flags:")
	h.output.Println("  --json, -j            Output in JSON format")
	h.output.Println("")
	h.output.Println("Examples:")
	h.output.Println("  ssh -p 23235 localhost broadcasts -j")
	h.output.Println("  ssh -p 23235 localhost feed > broadcasts.xml")
	return nil
}

func (h *Handler) handleStatus(ctx context.Context) error {
	if err := h.api.Status(ctx); err != nil {
		h.output.Error(err)
		return err
	}
	if h.output.IsJSON() {
		h.output.JSON(StatusResponse{API: h.conf.Conf.ApiURL, User: h.user.Username, Status: "ok"})
		return nil
	}
	h.output.Print("%s is up, signed in as %s\n", h.conf.Conf.ApiURL, h.user.Username)
	return nil
}
