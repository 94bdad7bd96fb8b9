package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/fwojciec/starprep"
	"github.com/fwojciec/starprep/api"
	"github.com/fwojciec/starprep/bubbletea"
	"github.com/fwojciec/starprep/clipboard"
	"github.com/fwojciec/starprep/fs"
	"github.com/fwojciec/starprep/gemini"
	"github.com/fwojciec/starprep/lipgloss"
)

// DefaultAPIURL is used when STARPREP_API_URL is not set.
const DefaultAPIURL = "http://localhost:8000"

// Config is the environment-derived configuration.
type Config struct {
	APIURL       string
	APIToken     string
	GeminiAPIKey string
	LogPath      string
}

// ConfigFromEnv reads configuration from the environment. A .env file in
// the working directory is loaded first when present.
func ConfigFromEnv() Config {
	_ = godotenv.Load()

	cfg := Config{
		APIURL:       os.Getenv("STARPREP_API_URL"),
		APIToken:     os.Getenv("STARPREP_API_TOKEN"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		LogPath:      os.Getenv("STARPREP_LOG"),
	}
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}
	return cfg
}

// App encapsulates the application collaborators for testing.
type App struct {
	Svc      starprep.StoryService
	ExpSvc   starprep.ExperienceService
	Gen      starprep.StoryGenerator
	Uploader starprep.ResumeUploader
	Flags    starprep.FlagStore
	Clip     starprep.Clipboard
	Log      zerolog.Logger
}

// Prefetch loads stories and experiences concurrently so the first frame
// renders with data. Either list failing fails the whole prefetch.
func (a *App) Prefetch(ctx context.Context) ([]starprep.Story, []starprep.Experience, error) {
	var (
		stories     []starprep.Story
		experiences []starprep.Experience
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stories, err = a.Svc.ListStories(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		experiences, err = a.ExpSvc.ListExperiences(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return stories, experiences, nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg := ConfigFromEnv()

	log, closeLog, err := newLogger(cfg.LogPath)
	if err != nil {
		return err
	}
	defer closeLog()

	client := api.New(cfg.APIURL,
		api.WithToken(cfg.APIToken),
		api.WithLogger(log),
	)

	app := &App{
		Svc:    client,
		ExpSvc: client,
		Gen:    client,
		Log:    log,
	}

	// With an API key set, stories are drafted by Gemini directly instead
	// of through the backend's generation endpoint.
	if cfg.GeminiAPIKey != "" {
		gc, err := gemini.NewClient(ctx, cfg.GeminiAPIKey)
		if err != nil {
			return fmt.Errorf("failed to create Gemini client: %w", err)
		}
		app.Gen = gemini.NewGenerator(gc, gemini.DefaultModel)
	}

	app.Uploader = client
	app.Flags = fs.NewFlagStore(fs.DefaultFlagsPath())
	if clip, err := clipboard.New(); err == nil {
		app.Clip = clip
	} else {
		log.Debug().Err(err).Msg("clipboard export disabled")
	}

	stories, experiences, err := app.Prefetch(ctx)
	if err != nil {
		return fmt.Errorf("failed to load data from %s: %w", cfg.APIURL, err)
	}
	log.Info().Int("stories", len(stories)).Int("experiences", len(experiences)).Msg("loaded")

	opts := []bubbletea.AppOption{
		bubbletea.WithAppTheme(lipgloss.DefaultTheme()),
		bubbletea.WithFlags(app.Flags),
		bubbletea.WithUploader(app.Uploader),
		bubbletea.WithAppLogger(log),
		bubbletea.WithPrefetched(stories, experiences),
	}
	if app.Clip != nil {
		opts = append(opts, bubbletea.WithAppClipboard(app.Clip))
	}

	m := bubbletea.NewAppModel(app.Svc, app.ExpSvc, app.Gen, opts...)
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	_, err = p.Run()
	return err
}

// newLogger returns a file-backed logger when path is set and a no-op
// logger otherwise. Logging to stderr would corrupt the TUI.
func newLogger(path string) (zerolog.Logger, func(), error) {
	if path == "" {
		return zerolog.Nop(), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Logger{}, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	log := zerolog.New(f).With().Timestamp().Logger()
	closeLog := func() {
		_ = f.Close()
	}
	return log, closeLog, nil
}
