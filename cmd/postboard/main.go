package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/docopt/docopt-go"
	"github.com/golang/glog"

	"github.com/nhle/postboard/internal/api"
	"github.com/nhle/postboard/internal/app"
	"github.com/nhle/postboard/internal/credential"
	"github.com/nhle/postboard/internal/model"
	"github.com/nhle/postboard/internal/store"
	appsync "github.com/nhle/postboard/internal/sync"
)

const LocalVersion = "0.0.0-local"

func main() {
	usage := fmt.Sprintf(
		`Postboard, a terminal client for the posts API.

The default config file is %s.
The default api_url is %s.

Usage:
    postboard [--config=<path>] [--api_url=<url>] [--log_dir=<dir>] [-v <level>]
    postboard init [--config=<path>] [--api_url=<url>]
    postboard login <token> [--config=<path>]
    postboard logout [--config=<path>]
    postboard -h | --help
    postboard --version

Options:
    -h --help          Show this screen.
    --version          Show version.
    --config=<path>    Config file.
    --api_url=<url>    Override api.base_url from the config file.
    --log_dir=<dir>    Write log files here instead of the temp dir.
    -v <level>         Log verbosity [default: 0].`,
		model.DefaultConfigPath(),
		model.DefaultBaseURL,
	)

	opts, err := docopt.ParseArgs(usage, os.Args[1:], RequireVersion())
	if err != nil {
		panic(err)
	}

	setupLogging(opts)
	defer glog.Flush()

	if init_, _ := opts.Bool("init"); init_ {
		exitOnErr(initConfig(opts))
		return
	}
	if login_, _ := opts.Bool("login"); login_ {
		exitOnErr(login(opts))
		return
	}
	if logout_, _ := opts.Bool("logout"); logout_ {
		exitOnErr(logout(opts))
		return
	}
	exitOnErr(run(opts))
}

func RequireVersion() string {
	if version := os.Getenv("POSTBOARD_VERSION"); version != "" {
		return version
	}
	return LocalVersion
}

// setupLogging routes glog to files so the terminal UI stays clean.
func setupLogging(opts docopt.Opts) {
	flag.Set("logtostderr", "false")
	flag.Set("alsologtostderr", "false")
	if logDirAny := opts["--log_dir"]; logDirAny != nil {
		flag.Set("log_dir", logDirAny.(string))
	}
	if levelAny := opts["-v"]; levelAny != nil {
		flag.Set("v", levelAny.(string))
	}
	flag.CommandLine.Parse([]string{})
}

func loadConfig(opts docopt.Opts) (string, *model.AppConfig, error) {
	path := model.DefaultConfigPath()
	if pathAny := opts["--config"]; pathAny != nil {
		path = pathAny.(string)
	}

	cfg, err := model.LoadConfig(path)
	if err != nil {
		return path, nil, err
	}
	if apiUrlAny := opts["--api_url"]; apiUrlAny != nil {
		cfg.API.BaseURL = apiUrlAny.(string)
	}
	return path, cfg, nil
}

func run(opts docopt.Opts) error {
	path, cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	glog.Infof("[main]config %s api %s", path, cfg.API.BaseURL)

	token, err := credential.Token(cfg.API.TokenKey)
	if err != nil {
		glog.Warningf("[main]no API token: %v", err)
	}

	clientOpts := []api.Option{
		api.WithTimeout(cfg.API.Timeout()),
		api.WithRateLimit(cfg.API.MaxRequestsPerSec),
	}
	if token != "" {
		clientOpts = append(clientOpts, api.WithToken(token))
	}
	client := api.NewClient(cfg.API.BaseURL, clientOpts...)

	s := store.New()
	s.Start()
	defer s.Close()

	thunks := appsync.NewThunks(s, client)
	poller := appsync.NewPoller(thunks, cfg.Notifications.PollInterval())
	defer poller.Stop()

	p := tea.NewProgram(app.New(s, thunks, poller), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running UI: %w", err)
	}
	return nil
}

func initConfig(opts docopt.Opts) error {
	path, cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	if err := model.SaveConfig(path, cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

func login(opts docopt.Opts) error {
	_, cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	token, _ := opts.String("<token>")
	if err := credential.Set(cfg.API.TokenKey, token); err != nil {
		return err
	}
	fmt.Printf("token stored as %q\n", cfg.API.TokenKey)
	return nil
}

func logout(opts docopt.Opts) error {
	_, cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	return credential.Delete(cfg.API.TokenKey)
}

func exitOnErr(err error) {
	if err == nil {
		return
	}
	glog.Errorf("[main]%v", err)
	glog.Flush()
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
