package settings

import (
	"database/sql"
	"maps"
	"slices"
	"time"

	"github.com/FocuswithJustin/JuniperChecks/core/categorizer"
	"github.com/FocuswithJustin/JuniperChecks/core/checks"
	"github.com/FocuswithJustin/JuniperChecks/core/errors"
	"github.com/FocuswithJustin/JuniperChecks/core/sqlite"
	"github.com/FocuswithJustin/JuniperChecks/internal/cache"
	"github.com/FocuswithJustin/JuniperChecks/internal/logging"
)

// DefaultProject is used when a store is opened without a project name.
const DefaultProject = "default"

// cacheTTL bounds how long values read from the database are reused.
const cacheTTL = 30 * time.Second

const schema = `CREATE TABLE IF NOT EXISTS parameters (
	project TEXT NOT NULL,
	name    TEXT NOT NULL,
	value   TEXT NOT NULL,
	PRIMARY KEY (project, name)
)`

// categorizerParams are the parameters the store's categorizer is built from.
var categorizerParams = []string{
	"Locale",
	"WordFormingCharacters",
	"PunctuationCharacters",
	"DiacriticsFollowBase",
}

// Store is a checks.ParameterStore persisted in SQLite. Parameters are
// scoped by project so one database can hold several translations.
type Store struct {
	db          *sql.DB
	project     string
	values      *cache.Cache[string, string]
	messages    map[string]string
	categorizer checks.CharacterCategorizer
}

var _ checks.ParameterStore = (*Store)(nil)

// OpenStore opens (creating if needed) the settings database at path.
func OpenStore(path, project string) (*Store, error) {
	db, err := sqlite.Open(path)
	if err != nil {
		return nil, errors.NewIO("open", path, err)
	}
	st, err := NewStore(db, project)
	if err != nil {
		db.Close()
		return nil, err
	}
	return st, nil
}

// NewStore wraps an open database, creating the parameters table.
func NewStore(db *sql.DB, project string) (*Store, error) {
	if project == "" {
		project = DefaultProject
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, errors.Wrap(err, "creating parameters table")
	}
	st := &Store{
		db:       db,
		project:  project,
		values:   cache.New[string, string](cacheTTL),
		messages: make(map[string]string),
	}
	if err := st.refreshCategorizer(); err != nil {
		return nil, err
	}
	return st, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Project returns the project the store is scoped to.
func (s *Store) Project() string { return s.project }

// ParameterValue returns the named parameter or "".
func (s *Store) ParameterValue(name string) string {
	return s.values.GetOrLoad(name, s.load)
}

func (s *Store) load(name string) string {
	var value string
	err := s.db.QueryRow(
		`SELECT value FROM parameters WHERE project = ? AND name = ?`,
		s.project, name,
	).Scan(&value)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			logging.ConfigError(name, err, "project", s.project)
		}
		return ""
	}
	return value
}

// SetParameterValue upserts a parameter value.
func (s *Store) SetParameterValue(name, value string) error {
	if name == "" {
		return errors.NewValidation("name", "parameter name is empty")
	}
	_, err := s.db.Exec(
		`INSERT INTO parameters (project, name, value) VALUES (?, ?, ?)
		 ON CONFLICT(project, name) DO UPDATE SET value = excluded.value`,
		s.project, name, value,
	)
	if err != nil {
		return errors.Wrapf(err, "saving parameter %s", name)
	}
	s.values.Set(name, value)
	if slices.Contains(categorizerParams, name) {
		return s.refreshCategorizer()
	}
	return nil
}

// Delete removes a parameter.
func (s *Store) Delete(name string) error {
	res, err := s.db.Exec(`DELETE FROM parameters WHERE project = ? AND name = ?`, s.project, name)
	if err != nil {
		return errors.Wrapf(err, "deleting parameter %s", name)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.NewNotFound("parameter", name)
	}
	s.values.Invalidate()
	if slices.Contains(categorizerParams, name) {
		return s.refreshCategorizer()
	}
	return nil
}

// List returns all parameters of the project.
func (s *Store) List() (map[string]string, error) {
	rows, err := s.db.Query(`SELECT name, value FROM parameters WHERE project = ? ORDER BY name`, s.project)
	if err != nil {
		return nil, errors.Wrap(err, "listing parameters")
	}
	defer rows.Close()

	params := make(map[string]string)
	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return nil, errors.Wrap(err, "reading parameter row")
		}
		params[name] = value
	}
	return params, rows.Err()
}

// Import stores every parameter of params in one transaction.
func (s *Store) Import(params map[string]string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return errors.Wrap(err, "starting import")
	}
	for name, value := range params {
		_, err := tx.Exec(
			`INSERT INTO parameters (project, name, value) VALUES (?, ?, ?)
			 ON CONFLICT(project, name) DO UPDATE SET value = excluded.value`,
			s.project, name, value,
		)
		if err != nil {
			tx.Rollback()
			return errors.Wrapf(err, "importing parameter %s", name)
		}
	}
	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "committing import")
	}
	s.values.Invalidate()
	return s.refreshCategorizer()
}

func (s *Store) refreshCategorizer() error {
	params, err := s.List()
	if err != nil {
		return err
	}
	s.categorizer = categorizer.FromParameters(params)
	return nil
}

// WithMessages installs localized message templates.
func (s *Store) WithMessages(messages map[string]string) *Store {
	s.messages = maps.Clone(messages)
	return s
}

// LocalizedString returns the translation of key, or key itself.
func (s *Store) LocalizedString(key string) string {
	if msg, ok := s.messages[key]; ok && msg != "" {
		return msg
	}
	return key
}

// Categorizer returns the character categorizer built from the stored
// categorizer parameters.
func (s *Store) Categorizer() checks.CharacterCategorizer {
	return s.categorizer
}
