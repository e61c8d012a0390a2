package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/deemkeen/herald/cli"
	"github.com/deemkeen/herald/client"
	"github.com/deemkeen/herald/domain"
	"github.com/deemkeen/herald/middleware"
	"github.com/deemkeen/herald/ui"
	"github.com/deemkeen/herald/util"
	"github.com/deemkeen/herald/web"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
)

const usage = `Usage: herald [-c config.yaml] <command> [args]

Commands:
  serve                 Run the SSH console
  tui [path]            Run the console in this terminal, e.g. tui admin/broadcast/1
  devapi                Serve the in-memory development API
  broadcasts, feed, ... Run a console command once (see "herald help")
`

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	fs := pflag.NewFlagSet(util.Name, pflag.ContinueOnError)
	fs.SetInterspersed(false)
	fs.SetOutput(stdout)
	fs.Usage = func() {
		fmt.Fprint(stdout, usage)
		fmt.Fprintln(stdout, "\nFlags:")
		fs.PrintDefaults()
	}
	showVersion := fs.BoolP("version", "v", false, "print the version and exit")
	configPath := fs.StringP("config", "c", "", "config file (default: ./config.yaml, then the user config dir)")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	if *showVersion {
		fmt.Fprintf(stdout, "%s v%s\n", util.Name, util.GetVersion())
		return nil
	}

	rest := fs.Args()
	if len(rest) == 0 {
		fs.Usage()
		return nil
	}

	conf, err := util.ReadConf(*configPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch rest[0] {
	case "serve":
		util.SetupLogging(conf.Conf.LogLevel, conf.Conf.WithJournald, os.Stderr)
		return serve(ctx, conf)
	case "tui":
		logFile, err := openLogFile()
		if err != nil {
			return err
		}
		defer logFile.Close()
		util.SetupLogging(conf.Conf.LogLevel, conf.Conf.WithJournald, logFile)
		start := ""
		if len(rest) > 1 {
			start = rest[1]
		}
		return runLocal(ctx, conf, start)
	case "devapi":
		util.SetupLogging(conf.Conf.LogLevel, conf.Conf.WithJournald, os.Stderr)
		gin.SetMode(gin.ReleaseMode)
		addr := net.JoinHostPort(conf.Conf.Host, strconv.Itoa(conf.Conf.DevApiPort))
		return web.Serve(ctx, addr, web.NewRouter(web.DefaultOptions(conf.Conf.ApiToken)))
	default:
		util.SetupLogging(conf.Conf.LogLevel, false, os.Stderr)
		return runCommand(ctx, conf, rest, stdout)
	}
}

func openLogFile() (*os.File, error) {
	dir, err := util.GetConfigDir()
	if err != nil {
		return nil, err
	}
	return os.OpenFile(filepath.Join(dir, util.Name+".log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
}

func serve(ctx context.Context, conf *util.AppConfig) error {
	api := client.FromConfig(conf)
	svc, err := ui.NewServices(ctx, conf, api)
	if err != nil {
		return err
	}

	dir, err := util.GetConfigDir()
	if err != nil {
		return err
	}

	addr := net.JoinHostPort(conf.Conf.Host, strconv.Itoa(conf.Conf.SshPort))
	s, err := wish.NewServer(
		wish.WithAddress(addr),
		wish.WithHostKeyPath(filepath.Join(dir, ".ssh", "hostkey")),
		// Keys are checked by AuthMiddleware so rejected users get a message.
		wish.WithPublicKeyAuth(func(ssh.Context, ssh.PublicKey) bool { return true }),
		wish.WithMiddleware(
			middleware.MainTui(svc, api),
			middleware.AuthMiddleware(conf),
		),
	)
	if err != nil {
		return fmt.Errorf("creating ssh server: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Str("version", util.GetVersion()).Msg("ssh console listening")
		errCh <- s.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, ssh.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	}
}

func runLocal(ctx context.Context, conf *util.AppConfig, start string) error {
	api := client.FromConfig(conf)
	svc, err := ui.NewServices(ctx, conf, api)
	if err != nil {
		return err
	}

	m := ui.NewModel(ctx, svc, start, 0, 0)
	defer m.Close()
	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

type stdio struct {
	io.Reader
	io.Writer
}

func runCommand(ctx context.Context, conf *util.AppConfig, args []string, stdout io.Writer) error {
	api := client.FromConfig(conf)
	var user domain.User
	if args[0] != "help" {
		var err error
		if user, err = api.UserMe(ctx); err != nil {
			return fmt.Errorf("fetching current user: %w", err)
		}
	}
	return cli.NewHandler(stdio{os.Stdin, stdout}, api, user, conf).Execute(ctx, args)
}
