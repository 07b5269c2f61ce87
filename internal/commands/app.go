package commands

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fintrack-dev/fintrack/internal/activitylog"
	"github.com/fintrack-dev/fintrack/internal/api"
	"github.com/fintrack-dev/fintrack/internal/config"
	"github.com/fintrack-dev/fintrack/internal/guard"
	"github.com/fintrack-dev/fintrack/internal/logging"
	"github.com/fintrack-dev/fintrack/internal/model"
	"github.com/fintrack-dev/fintrack/internal/resource"
	"github.com/fintrack-dev/fintrack/internal/session"
)

// app wires the client together for one command invocation: config, the
// session store (token owner), the gateway (token reader), and the guard.
type app struct {
	cfg     *config.Config
	dataDir string
	log     *logrus.Logger
	session *session.Store
	gateway *api.Gateway
	guard   *guard.Guard
}

func newApp() (*app, error) {
	cfg, dataDir, err := config.Resolve()
	if err != nil {
		return nil, err
	}
	logger := logging.New(cfg.Log.Level)
	store := session.NewStore(dataDir, logger)
	gateway := api.New(cfg.API.BaseURL, store, logger, time.Duration(cfg.API.TimeoutSeconds)*time.Second)
	return &app{
		cfg:     cfg,
		dataDir: dataDir,
		log:     logger,
		session: store,
		gateway: gateway,
		guard:   guard.New(store.IsAuthenticated()),
	}, nil
}

func (a *app) incomes() *resource.Collection[model.Transaction, model.TransactionDraft] {
	return resource.Incomes(a.gateway)
}

func (a *app) expenses() *resource.Collection[model.Transaction, model.TransactionDraft] {
	return resource.Expenses(a.gateway)
}

func (a *app) categories() *resource.Collection[model.Category, model.CategoryDraft] {
	return resource.Categories(a.gateway)
}

// observe routes every operation error through the guard: an
// AuthenticationError invalidates the session, so the returned error
// points the user back at login.
func (a *app) observe(err error) error {
	if err == nil {
		return nil
	}
	if a.guard.Observe(err) {
		return fmt.Errorf("%w (run 'fintrack login' to start a new session)", err)
	}
	return err
}

// recordActivity appends to the local audit trail; failures are logged and
// never surfaced.
func (a *app) recordActivity(action, resourceName, detail string) {
	entry := activitylog.Entry{
		Timestamp: time.Now(),
		Action:    action,
		Resource:  resourceName,
		Detail:    detail,
	}
	if err := activitylog.Append(a.dataDir, []activitylog.Entry{entry}); err != nil {
		a.log.WithError(err).Warn("could not append to activity log")
	}
}

// confirm asks a yes/no question on the command's input stream.
func confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", prompt)
	reader := bufio.NewReader(in)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

// resolveCategory turns a user-supplied --category argument (numeric id or
// name) into a category from the current snapshot.
func resolveCategory(ix *resource.CategoryIndex, arg string) (model.Category, error) {
	if id, err := strconv.Atoi(arg); err == nil {
		if c, ok := ix.Get(id); ok {
			return c, nil
		}
		return model.Category{}, fmt.Errorf("no category with id %d", id)
	}
	if c, ok := ix.ByName(arg); ok {
		return c, nil
	}
	return model.Category{}, fmt.Errorf("no category named %q", arg)
}
