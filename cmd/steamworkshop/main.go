// Command steamworkshop queries the Steam Workshop from the command line.
//
// Usage:
//
//	steamworkshop [-config path] [-v] <command> [flags] [args]
//
// Commands:
//
//	details <id>...          published file metadata
//	search [flags] <query>   search a workshop, -all walks every page
//	collection [-expand] <id>
//	subscribe [-notify] <id>
//	unsubscribe <id>
//	can-subscribe <id>
//	local [-details] <dir>   list the .vpk addons in a directory
//	check                    verify Steam still serves the endpoints used
//	version
//
// Results are written to stdout as JSON. The API key is read from
// config.yaml or STEAM_API_KEY.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/go-openapi/runtime"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"

	"github.com/steamworkshop/steamworkshop-go"
)

const usage = `Usage: steamworkshop [-config path] [-v] <command> [flags] [args]

Commands:
  details <id>...          published file metadata
  search [flags] <query>   search a workshop
  collection [-expand] <id>
  subscribe [-notify] [-app id] <id>
  unsubscribe <id>
  can-subscribe <id>
  local [-details] <dir>   list the .vpk addons in a directory
  check                    verify Steam still serves the endpoints used
  version

Global flags:
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// usageError is returned for bad command lines; it exits with status 2.
type usageError string

func (e usageError) Error() string { return string(e) }

// app is what every command gets.
type app struct {
	client *steamworkshop.Client
	stdout io.Writer
	stderr io.Writer
	log    logrus.FieldLogger
}

type command func(ctx context.Context, a *app, args []string) error

var commands = map[string]command{
	"details":       runDetails,
	"search":        runSearch,
	"collection":    runCollection,
	"subscribe":     runSubscribe,
	"unsubscribe":   runUnsubscribe,
	"can-subscribe": runCanSubscribe,
	"local":         runLocal,
	"check":         runCheck,
	"version":       runVersion,
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("steamworkshop", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to config.yaml (default $XDG_CONFIG_HOME/steamworkshop/config.yaml)")
	verbose := fs.Bool("v", false, "log every request")
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}

	name := fs.Arg(0)
	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(stderr, "steamworkshop: unknown command %q\n", name)
		fs.Usage()
		return 2
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "steamworkshop: %v\n", err)
		return 1
	}

	log, closeLog := newLogger(cfg, stderr, *verbose)
	defer closeLog()

	reg := prometheus.NewRegistry()
	metrics, err := steamworkshop.NewMetrics(reg)
	if err != nil {
		fmt.Fprintf(stderr, "steamworkshop: %v\n", err)
		return 1
	}

	a := &app{
		client: steamworkshop.NewClient(
			steamworkshop.WithAPIKey(cfg.APIKey),
			steamworkshop.WithBaseURL(cfg.BaseURL),
			steamworkshop.WithTimeout(cfg.Timeout),
			steamworkshop.WithLogger(log),
			steamworkshop.WithMetrics(metrics),
		),
		stdout: stdout,
		stderr: stderr,
		log:    log,
	}

	err = cmd(ctx, a, fs.Args()[1:])
	pushMetrics(cfg, reg, name, log)

	switch {
	case err == nil:
		return 0
	case errors.Is(err, flag.ErrHelp):
		return 0
	}
	var apiErr *steamworkshop.Error
	if errors.As(err, &apiErr) {
		fmt.Fprintln(stderr, err)
	} else {
		fmt.Fprintf(stderr, "steamworkshop: %v\n", err)
	}
	var ue usageError
	if errors.As(err, &ue) {
		return 2
	}
	return 1
}

func newLogger(cfg *Config, stderr io.Writer, verbose bool) (*logrus.Logger, func()) {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = logrus.WarnLevel
	}
	if verbose {
		level = logrus.DebugLevel
	}
	log.SetLevel(level)

	closeFn := func() {}
	writers := []io.Writer{stderr}
	if cfg.Logging.LogPath != "" {
		f, err := os.OpenFile(cfg.Logging.LogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err == nil {
			writers = append(writers, f)
			closeFn = func() { _ = f.Close() }
		}
	}
	log.SetOutput(io.MultiWriter(writers...))
	return log, closeFn
}

// pushMetrics sends this run's request metrics to a Pushgateway when one is
// configured. Failures are logged, not fatal.
func pushMetrics(cfg *Config, reg *prometheus.Registry, name string, log logrus.FieldLogger) {
	if cfg.Metrics.PushgatewayURL == "" {
		return
	}
	err := push.New(cfg.Metrics.PushgatewayURL, "steamworkshop").
		Gatherer(reg).
		Grouping("command", name).
		Push()
	if err != nil {
		log.WithError(err).Warn("failed to push metrics")
	}
}

func (a *app) print(v any) error {
	return runtime.JSONProducer().Produce(a.stdout, v)
}

// newFlags returns a flag set for a subcommand.
func (a *app) newFlags(name, args string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	fs.Usage = func() {
		fmt.Fprintf(a.stderr, "Usage: steamworkshop %s %s\n", name, args)
		fs.PrintDefaults()
	}
	return fs
}

// parseFlags parses a subcommand's flags. A bad flag is a usage error;
// the flag package has already printed the usage.
func parseFlags(fs *flag.FlagSet, args []string) error {
	err := fs.Parse(args)
	if err == nil || errors.Is(err, flag.ErrHelp) {
		return err
	}
	return usageError(fs.Name() + ": " + err.Error())
}

// oneID parses a command line holding a single published file id.
func oneID(fs *flag.FlagSet, args []string) (string, error) {
	if err := parseFlags(fs, args); err != nil {
		return "", err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return "", usageError(fs.Name() + " takes exactly one published file id")
	}
	return fs.Arg(0), nil
}

func runDetails(ctx context.Context, a *app, args []string) error {
	fs := a.newFlags("details", "<id>...")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return usageError("details needs at least one published file id")
	}

	items, err := fetchDetails(ctx, a.client, fs.Args())
	if err != nil {
		return err
	}
	return a.print(items)
}

// fetchDetails looks up any number of ids in batches Steam accepts.
func fetchDetails(ctx context.Context, client *steamworkshop.Client, ids []string) ([]steamworkshop.WorkshopItem, error) {
	items := make([]steamworkshop.WorkshopItem, 0, len(ids))
	for start := 0; start < len(ids); start += steamworkshop.MaxDetailsBatch {
		end := min(start+steamworkshop.MaxDetailsBatch, len(ids))
		batch, err := client.GetPublishedFileDetails(ctx, ids[start:end])
		if err != nil {
			return nil, err
		}
		items = append(items, batch...)
	}
	return items, nil
}

// stringList is a repeatable string flag.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

// queryTypeFlag accepts a query type by name or number.
// Unset leaves the choice to SearchItems.
type queryTypeFlag struct {
	value *steamworkshop.QueryType
}

func (q *queryTypeFlag) String() string {
	if q.value == nil {
		return ""
	}
	return q.value.String()
}

func (q *queryTypeFlag) Set(v string) error {
	if n, err := strconv.Atoi(v); err == nil {
		q.value = steamworkshop.NewQueryType(steamworkshop.QueryType(n))
		return nil
	}
	for t := steamworkshop.RankedByVote; t <= steamworkshop.RankedByLastUpdatedDate; t++ {
		if strings.EqualFold(t.String(), v) {
			q.value = t.Pointer()
			return nil
		}
	}
	return fmt.Errorf("unknown query type %q", v)
}

func runSearch(ctx context.Context, a *app, args []string) error {
	fs := a.newFlags("search", "[flags] <query>")
	appID := fs.Uint("app", 0, "app id of the workshop to search")
	creatorAppID := fs.Uint("creator-app", 0, "app id that created the files (default -app)")
	matchAll := fs.Bool("match-all", false, "require every -tag instead of any")
	days := fs.Uint("days", 0, "trend window in days, 1 to 7 (trend query types only)")
	count := fs.Uint("count", 0, "page size, 1 to 100 (default 10)")
	cursor := fs.String("cursor", "", "continue from a previous next_cursor")
	all := fs.Bool("all", false, "walk every page")
	var tags, excluded stringList
	fs.Var(&tags, "tag", "required tag, repeatable")
	fs.Var(&excluded, "exclude", "excluded tag, repeatable")
	var queryType queryTypeFlag
	fs.Var(&queryType, "type", "ranking, by name or number (default RankedByVote, RankedByTextSearch with a query)")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	opts := &steamworkshop.SearchOptions{
		Query:        strings.Join(fs.Args(), " "),
		Cursor:       *cursor,
		AppID:        uint32(*appID),
		CreatorAppID: uint32(*creatorAppID),
		RequiredTags: tags,
		MatchAllTags: *matchAll,
		ExcludedTags: excluded,
		QueryType:    queryType.value,
		Days:         uint32(*days),
		Count:        uint32(*count),
	}

	if !*all {
		page, err := a.client.SearchItems(ctx, opts)
		if err != nil {
			return err
		}
		return a.print(page)
	}
	return a.searchAll(ctx, opts)
}

// searchAll walks every page, showing progress on stderr.
func (a *app) searchAll(ctx context.Context, opts *steamworkshop.SearchOptions) error {
	pager := a.client.SearchPages(opts)
	result := &steamworkshop.SearchResult{
		Items:  []steamworkshop.WorkshopItem{},
		Cursor: opts.Cursor,
	}

	var bar *progressbar.ProgressBar
	for pager.Next(ctx) {
		page := pager.Page()
		if bar == nil {
			total := int64(page.Total)
			if total == 0 {
				total = -1
			}
			bar = progressbar.NewOptions64(total,
				progressbar.OptionSetWriter(a.stderr),
				progressbar.OptionSetDescription("searching"),
				progressbar.OptionShowCount(),
				progressbar.OptionClearOnFinish(),
			)
			result.Total = page.Total
		}
		result.Items = append(result.Items, page.Items...)
		_ = bar.Add(len(page.Items))
	}
	if bar != nil {
		_ = bar.Finish()
	}
	result.NextCursor = pager.Cursor()

	if err := pager.Err(); err != nil {
		a.log.WithFields(logrus.Fields{
			"fetched": len(result.Items),
			"cursor":  pager.Cursor(),
		}).Warn("search stopped early, resume with -cursor")
		return err
	}
	return a.print(result)
}

func runCollection(ctx context.Context, a *app, args []string) error {
	fs := a.newFlags("collection", "[-expand] <id>")
	expand := fs.Bool("expand", false, "also fetch the details of every member")
	id, err := oneID(fs, args)
	if err != nil {
		return err
	}

	col, err := a.client.GetCollectionDetails(ctx, id)
	if err != nil {
		return err
	}
	if !*expand {
		return a.print(col)
	}

	out := struct {
		*steamworkshop.Collection
		Items []steamworkshop.WorkshopItem `json:"items"`
	}{Collection: col, Items: []steamworkshop.WorkshopItem{}}
	if col.IsCollection() {
		out.Items, err = fetchDetails(ctx, a.client, col.ChildIDs())
		if err != nil {
			return err
		}
	}
	return a.print(out)
}

type subscription struct {
	ID         string `json:"id"`
	Subscribed bool   `json:"subscribed"`
}

func runSubscribe(ctx context.Context, a *app, args []string) error {
	fs := a.newFlags("subscribe", "[-notify] [-app id] <id>")
	notify := fs.Bool("notify", false, "tell a running Steam client to download the item")
	appID := fs.Uint("app", 0, "app id the file belongs to")
	id, err := oneID(fs, args)
	if err != nil {
		return err
	}

	var opts []steamworkshop.SubscribeOption
	if *notify {
		opts = append(opts, steamworkshop.WithNotifyClient(true))
	}
	if *appID != 0 {
		opts = append(opts, steamworkshop.WithAppID(uint32(*appID)))
	}
	if err := a.client.Subscribe(ctx, id, opts...); err != nil {
		return err
	}
	return a.print(subscription{ID: id, Subscribed: true})
}

func runUnsubscribe(ctx context.Context, a *app, args []string) error {
	id, err := oneID(a.newFlags("unsubscribe", "<id>"), args)
	if err != nil {
		return err
	}
	if err := a.client.Unsubscribe(ctx, id); err != nil {
		return err
	}
	return a.print(subscription{ID: id, Subscribed: false})
}

func runCanSubscribe(ctx context.Context, a *app, args []string) error {
	id, err := oneID(a.newFlags("can-subscribe", "<id>"), args)
	if err != nil {
		return err
	}
	ok, err := a.client.CanSubscribe(ctx, id)
	if err != nil {
		return err
	}
	return a.print(struct {
		ID           string `json:"id"`
		CanSubscribe bool   `json:"can_subscribe"`
	}{ID: id, CanSubscribe: ok})
}

type localAddon struct {
	File string                      `json:"file"`
	ID   string                      `json:"id,omitempty"`
	Item *steamworkshop.WorkshopItem `json:"item,omitempty"`
}

func runLocal(ctx context.Context, a *app, args []string) error {
	fs := a.newFlags("local", "[-details] <dir>")
	details := fs.Bool("details", false, "fetch details for addons named after a published file id")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return usageError("local takes exactly one directory")
	}

	files, err := steamworkshop.AddonFiles(fs.Arg(0))
	if err != nil {
		return err
	}

	addons := make([]localAddon, 0, len(files))
	var ids []string
	for _, f := range files {
		addon := localAddon{File: f.Name()}
		if id, ok := steamworkshop.AddonID(f.Name()); ok {
			addon.ID = id
			ids = append(ids, id)
		}
		addons = append(addons, addon)
	}

	if *details && len(ids) > 0 {
		items, err := fetchDetails(ctx, a.client, ids)
		if err != nil {
			return err
		}
		byID := make(map[string]*steamworkshop.WorkshopItem, len(items))
		for i := range items {
			byID[items[i].ID] = &items[i]
		}
		for i := range addons {
			addons[i].Item = byID[addons[i].ID]
		}
	}
	return a.print(addons)
}

func runCheck(ctx context.Context, a *app, args []string) error {
	fs := a.newFlags("check", "")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	statuses, err := a.client.CheckEndpoints(ctx)
	if err != nil {
		return err
	}
	if err := a.print(statuses); err != nil {
		return err
	}

	var broken []string
	for _, s := range statuses {
		if !s.Compatible {
			broken = append(broken, fmt.Sprintf("%s v%d", s.Endpoint, s.Endpoint.Version))
		}
	}
	if len(broken) > 0 {
		return fmt.Errorf("%d endpoint(s) not served at a compatible version: %s", len(broken), strings.Join(broken, ", "))
	}
	return nil
}

func runVersion(_ context.Context, a *app, _ []string) error {
	_, err := fmt.Fprintln(a.stdout, steamworkshop.DefaultUserAgent)
	return err
}
