package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"sync"

	"github.com/dmitrijs2005/opmlogin/internal/client/client"
	"github.com/dmitrijs2005/opmlogin/internal/client/config"
	"github.com/dmitrijs2005/opmlogin/internal/client/form"
	"github.com/dmitrijs2005/opmlogin/internal/logging"
)

const banner = "Online Project Manager (type 'help' for commands)"

type App struct {
	config *config.Config
	logger logging.Logger
	api    client.Client
	form   *form.Controller
	reader *bufio.Reader
	out    io.Writer

	mu    sync.Mutex
	route string
}

// NewApp builds the CLI around the HTTP auth client. Logs go to stderr so
// they do not break the form rendered on stdout.
func NewApp(c *config.Config) (*App, error) {
	u, err := url.ParseRequestURI(c.ServerBaseURL)
	if err != nil || u.Host == "" {
		return nil, fmt.Errorf("invalid server base url %q", c.ServerBaseURL)
	}

	logger := logging.NewTextLogger(os.Stderr, c.SlogLevel())
	api := client.NewHTTPClient(c.ServerBaseURL)

	return newApp(c, api, logger, bufio.NewReader(os.Stdin), os.Stdout), nil
}

func newApp(c *config.Config, api client.Client, logger logging.Logger, reader *bufio.Reader, out io.Writer) *App {
	// toasts are written from the submitting goroutine
	out = &lockedWriter{w: out}

	a := &App{
		config: c,
		logger: logger,
		api:    api,
		reader: reader,
		out:    out,
		route:  form.RouteLogin,
	}
	a.form = form.NewController(api, &toastNotifier{out: out}, a, logger, form.Settings{
		RequestTimeout:       c.RequestTimeout,
		FallbackErrorMessage: c.FallbackErrorMessage,
	})
	return a
}

// Navigate implements form.Navigator.
func (a *App) Navigate(ctx context.Context, route string) {
	a.mu.Lock()
	a.route = route
	a.mu.Unlock()
	a.logger.Debug(ctx, "navigated", "route", route)
}

func (a *App) currentRoute() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.route
}

// Run shows the form and blocks in the REPL until exit, EOF or ctx is done.
func (a *App) Run(ctx context.Context) {
	defer a.form.Cancel()

	fmt.Fprintln(a.out, banner)
	_ = a.ShowForm(ctx)

	runREPL(ctx, a, a.reader, a.out)
}

type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}
