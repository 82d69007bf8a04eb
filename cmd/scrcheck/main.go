// Command scrcheck runs the Scripture consistency checks over USFM files and
// manages the parameters that configure them.
package main

import (
	"context"
	"fmt"
	"io"
	"maps"
	"os"
	"os/signal"
	"slices"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/google/uuid"

	"github.com/FocuswithJustin/JuniperChecks/core/checks"
	"github.com/FocuswithJustin/JuniperChecks/core/errors"
	"github.com/FocuswithJustin/JuniperChecks/core/report"
	"github.com/FocuswithJustin/JuniperChecks/core/runner"
	"github.com/FocuswithJustin/JuniperChecks/core/settings"
	"github.com/FocuswithJustin/JuniperChecks/core/sqlite"
	"github.com/FocuswithJustin/JuniperChecks/internal/logging"
	"github.com/FocuswithJustin/JuniperChecks/internal/tokenizer/usfm"
	"github.com/FocuswithJustin/JuniperChecks/internal/validation"
)

const version = "0.1.0"

// Injectable for testing
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// CLI defines the command-line interface for scrcheck.
var CLI struct {
	// Global flags
	Settings  string `name:"settings" short:"s" help:"JSON settings file" type:"path"`
	DB        string `name:"db" help:"SQLite settings database (overrides --settings)" type:"path"`
	Project   string `name:"project" help:"Project within the settings database" default:"default"`
	LogLevel  string `name:"log-level" help:"Log level (debug, info, warn, error)" default:"warn"`
	LogFormat string `name:"log-format" help:"Log format" enum:"json,text" default:"text"`

	Check     CheckCmd      `cmd:"" help:"Run checks over a USFM file"`
	Inventory InventoryCmd  `cmd:"" help:"List or edit the inventory of a check"`
	Params    SettingsGroup `cmd:"" name:"settings" help:"Show and edit parameters"`
	Checks    ListChecksCmd `cmd:"" help:"List the available checks"`
	Version   VersionCmd    `cmd:"" help:"Print version information"`
}

// SettingsGroup contains parameter operations.
type SettingsGroup struct {
	List   SettingsListCmd   `cmd:"" help:"List all parameters"`
	Get    SettingsGetCmd    `cmd:"" help:"Print one parameter"`
	Set    SettingsSetCmd    `cmd:"" help:"Set one parameter"`
	Delete SettingsDeleteCmd `cmd:"" help:"Delete a parameter (database only)"`
	Import SettingsImportCmd `cmd:"" help:"Import a JSON settings file into the database"`
	Export SettingsExportCmd `cmd:"" help:"Write all parameters as a JSON settings file"`
}

// session is the parameter store selected by the global flags.
type session struct {
	store checks.ParameterStore
	db    *settings.Store  // nil unless --db
	json  *settings.Source // nil when --db is used
	path  string           // JSON file to save to, if any
}

// openSession opens the settings database, or loads the JSON settings
// file, or starts from empty parameters. A --settings file that is a SQLite
// database is opened as one.
func openSession() (*session, error) {
	db := CLI.DB
	if db == "" && CLI.Settings != "" {
		kind, err := validation.SniffFile(CLI.Settings)
		if err != nil {
			return nil, err
		}
		if kind == validation.KindSQLite {
			db = CLI.Settings
		}
	}
	switch {
	case db != "":
		st, err := settings.OpenStore(db, CLI.Project)
		if err != nil {
			return nil, err
		}
		return &session{store: st, db: st}, nil
	case CLI.Settings != "":
		src, err := settings.LoadJSONFile(CLI.Settings)
		if err != nil {
			return nil, err
		}
		return &session{store: src, json: src, path: CLI.Settings}, nil
	}
	src := settings.NewSource(nil)
	return &session{store: src, json: src}, nil
}

func (s *session) parameters() (map[string]string, error) {
	if s.db != nil {
		return s.db.List()
	}
	return s.json.Parameters(), nil
}

// save writes in-memory edits back to the JSON settings file. Database
// edits are already persisted.
func (s *session) save() error {
	if s.db != nil {
		return nil
	}
	if s.path == "" {
		return errors.NewValidation("settings", "no --settings file or --db to save to")
	}
	file, err := os.Create(s.path)
	if err != nil {
		return errors.NewIO("create", s.path, err)
	}
	defer file.Close()
	return s.json.WriteJSON(file)
}

// readBooks parses a USFM file after checking it is one.
func readBooks(path string) ([]usfm.Book, error) {
	kind, err := validation.SniffFile(path)
	if err != nil {
		return nil, err
	}
	if kind != validation.KindUSFM {
		return nil, errors.NewUnsupported("input", fmt.Sprintf("%s is %s, not USFM", path, kind))
	}
	return usfm.ParseFile(path)
}

func (s *session) close() {
	if s.db != nil {
		s.db.Close()
	}
}

// CheckCmd runs checks over every book of a USFM file.
type CheckCmd struct {
	Path    string   `arg:"" help:"USFM file to check" type:"existingfile"`
	Checks  []string `help:"Checks to run (default: all)" sep:","`
	Format  string   `help:"Report format" enum:"json,xz" default:"json"`
	Out     string   `help:"Write the report to a file instead of stdout" type:"path"`
	Workers int      `help:"Concurrent checks (0 = default)" default:"0"`
	Fail    bool     `name:"fail-on-findings" help:"Exit with an error when anything is found"`
}

func (c *CheckCmd) Run(ctx context.Context) error {
	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.close()

	books, err := readBooks(c.Path)
	if err != nil {
		return err
	}
	checkers, err := runner.Build(sess.store, c.Checks...)
	if err != nil {
		return err
	}
	r := runner.New(checkers...).WithWorkers(c.Workers)

	reports := make([]*report.Report, 0, len(books))
	total := 0
	for _, b := range books {
		runID := uuid.New()
		runCtx := logging.WithRunID(ctx, runID.String())
		logging.InfoContext(runCtx, "checking book", "book", b.ID, "tokens", len(b.Tokens), "checks", len(checkers))
		results, err := r.Run(runCtx, b.ID, b.Tokens)
		if err != nil {
			return errors.Wrapf(err, "checking %s", b.ID)
		}
		rep := report.New(b.ID, results)
		rep.RunID = runID
		reports = append(reports, rep)
		total += len(rep.Findings)
	}

	w := stdout
	if c.Out != "" {
		if err := validation.ValidatePath(c.Out); err != nil {
			return errors.NewValidation("out", err.Error())
		}
		file, err := os.Create(c.Out)
		if err != nil {
			return errors.NewIO("create", c.Out, err)
		}
		defer file.Close()
		w = file
	}
	for _, rep := range reports {
		if c.Format == "xz" {
			err = rep.WriteXZ(w)
		} else {
			err = rep.WriteJSON(w)
		}
		if err != nil {
			return err
		}
		fp, err := rep.Fingerprint()
		if err != nil {
			return err
		}
		logging.Debug("report written", "book", rep.Book, "run_id", rep.RunID, "fingerprint", fp)
		fmt.Fprintf(stderr, "%s: %d findings (%s)\n", rep.Book, len(rep.Findings), fp[:16])
	}

	if c.Fail && total > 0 {
		logging.WarnContext(ctx, "failing on findings", "findings", total, "books", len(books))
		return fmt.Errorf("%d findings", total)
	}
	return nil
}

// InventoryCmd lists the items found by an inventory check, marks items
// valid or invalid, or shows the occurrences of one item.
type InventoryCmd struct {
	Check   string   `arg:"" help:"Inventory check (characters, matchedpairs, mixedcaps, punctuation, repeatedwords)"`
	Path    string   `arg:"" help:"USFM file" type:"existingfile"`
	Key     string   `help:"Show every occurrence of this item"`
	Valid   []string `help:"Mark an item valid (repeatable)" sep:"none"`
	Invalid []string `help:"Mark an item invalid (repeatable)" sep:"none"`
}

func (c *InventoryCmd) Run() error {
	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.close()

	books, err := readBooks(c.Path)
	if err != nil {
		return err
	}
	check, err := runner.BuildInventory(sess.store, c.Check)
	if err != nil {
		return err
	}
	inv := check.Inventory()

	if len(c.Valid) > 0 || len(c.Invalid) > 0 {
		valid, invalid := inv.ValidList(), inv.InvalidList()
		for _, item := range c.Valid {
			valid = addItem(valid, item)
			invalid = slices.DeleteFunc(invalid, func(s string) bool { return s == item })
		}
		for _, item := range c.Invalid {
			invalid = addItem(invalid, item)
			valid = slices.DeleteFunc(valid, func(s string) bool { return s == item })
		}
		inv.SetValidItems(strings.Join(valid, " "))
		inv.SetInvalidItems(strings.Join(invalid, " "))
		if err := inv.Save(sess.store); err != nil {
			return err
		}
		if err := sess.save(); err != nil {
			return err
		}
	}

	if c.Key != "" {
		for _, b := range books {
			for _, ref := range check.References(slices.Values(b.Tokens), c.Key) {
				fmt.Fprintf(stdout, "%s\t%s\n", ref.Token().ScrRefString(), ref.Text())
			}
		}
		return nil
	}

	counts := make(map[string]int)
	for _, b := range books {
		for _, ref := range check.References(slices.Values(b.Tokens), "") {
			counts[ref.Key()]++
		}
	}
	for _, key := range slices.Sorted(maps.Keys(counts)) {
		status := "unknown"
		switch {
		case inv.IsValid(key):
			status = "valid"
		case inv.IsInvalid(key):
			status = "invalid"
		}
		fmt.Fprintf(stdout, "%s\t%d\t%s\n", key, counts[key], status)
	}
	return nil
}

func addItem(items []string, item string) []string {
	if slices.Contains(items, item) {
		return items
	}
	return append(items, item)
}

// SettingsListCmd lists all parameters.
type SettingsListCmd struct{}

func (c *SettingsListCmd) Run() error {
	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.close()
	params, err := sess.parameters()
	if err != nil {
		return err
	}
	for _, name := range slices.Sorted(maps.Keys(params)) {
		fmt.Fprintf(stdout, "%s=%s\n", name, params[name])
	}
	return nil
}

// SettingsGetCmd prints one parameter.
type SettingsGetCmd struct {
	Name string `arg:"" help:"Parameter name"`
}

func (c *SettingsGetCmd) Run() error {
	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.close()
	value := sess.store.ParameterValue(c.Name)
	if value == "" {
		return errors.NewNotFound("parameter", c.Name)
	}
	fmt.Fprintln(stdout, value)
	return nil
}

// SettingsSetCmd sets one parameter.
type SettingsSetCmd struct {
	Name  string `arg:"" help:"Parameter name"`
	Value string `arg:"" help:"Parameter value"`
}

func (c *SettingsSetCmd) Run() error {
	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.close()
	if err := sess.store.SetParameterValue(c.Name, c.Value); err != nil {
		return err
	}
	return sess.save()
}

// SettingsDeleteCmd removes a parameter from the database.
type SettingsDeleteCmd struct {
	Name string `arg:"" help:"Parameter name"`
}

func (c *SettingsDeleteCmd) Run() error {
	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.close()
	if sess.db == nil {
		return errors.NewUnsupported("settings delete", "requires --db")
	}
	return sess.db.Delete(c.Name)
}

// SettingsImportCmd copies a JSON settings file into the database.
type SettingsImportCmd struct {
	File string `arg:"" help:"JSON settings file" type:"existingfile"`
}

func (c *SettingsImportCmd) Run() error {
	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.close()
	if sess.db == nil {
		return errors.NewUnsupported("settings import", "requires --db")
	}
	src, err := settings.LoadJSONFile(c.File)
	if err != nil {
		return err
	}
	params := src.Parameters()
	if err := sess.db.Import(params); err != nil {
		return err
	}
	logging.Info("parameters imported", "file", c.File, "count", len(params), "project", sess.db.Project())
	fmt.Fprintf(stderr, "imported %d parameters into project %s\n", len(params), sess.db.Project())
	return nil
}

// SettingsExportCmd writes all parameters as a JSON settings document.
type SettingsExportCmd struct{}

func (c *SettingsExportCmd) Run() error {
	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.close()
	params, err := sess.parameters()
	if err != nil {
		return err
	}
	return settings.NewSource(params).WriteJSON(stdout)
}

// ListChecksCmd lists the registered checks.
type ListChecksCmd struct{}

func (c *ListChecksCmd) Run() error {
	checkers, err := runner.Build(settings.NewSource(nil))
	if err != nil {
		return err
	}
	names := runner.Names()
	for i, ch := range checkers {
		inventory := ""
		if _, ok := ch.(runner.Inventoried); ok {
			inventory = "\tinventory"
		}
		fmt.Fprintf(stdout, "%-15s %s\t%s%s\n", names[i], ch.ID(), ch.Name(), inventory)
	}
	return nil
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	info := sqlite.GetInfo()
	fmt.Fprintf(stdout, "scrcheck version %s (sqlite: %s, %s)\n", version, info.Package, info.DriverType)
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	kctx := kong.Parse(&CLI,
		kong.Name("scrcheck"),
		kong.Description("Scripture text consistency checks"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.BindTo(ctx, (*context.Context)(nil)),
	)

	format := logging.FormatText
	if CLI.LogFormat == "json" {
		format = logging.FormatJSON
	}
	logging.InitLogger(logging.ParseLevel(CLI.LogLevel), format)

	logging.Debug("starting", "command", kctx.Command(), "sqlite", sqlite.DriverType())
	if err := kctx.Run(); err != nil {
		logging.Error("command failed", "command", kctx.Command(), "error", err)
		kctx.FatalIfErrorf(err)
	}
}
