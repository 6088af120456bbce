package vacancy

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/honeycarbs/hh-vacancies/internal/domain"
	"github.com/honeycarbs/hh-vacancies/pkg/logging"
)

const defaultPerPage = 100

// Params are the user supplied search parameters
type Params struct {
	Query       string `validate:"required"`
	Count       int    `validate:"gt=0"`
	Keywords    []string
	SalaryRange string
}

// Result is the outcome of one search run
type Result struct {
	RunID     uuid.UUID
	FetchedAt time.Time
	Fetched   int
	Skipped   int
	Stored    int
	Vacancies []domain.Vacancy
	// RangeErr is set when the salary range was malformed and ignored
	RangeErr error
	// StoreErr is the first persistence failure; results are still returned
	StoreErr error
}

// Criteria narrows stored vacancies by exact attribute values. Empty fields match anything
type Criteria struct {
	Employer string
	Region   string
	Currency string
	Limit    int
}

// Service fetches, normalizes, persists and ranks vacancies
type Service interface {
	Probe(ctx context.Context) error
	Search(ctx context.Context, p Params) (Result, error)
	Stored(ctx context.Context, c Criteria) ([]domain.Vacancy, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// Option configures Service
type Option func(*config)

type config struct {
	source   Source
	store    Store
	logger   *logging.Logger
	perPage  int
	matchAny bool
	clock    func() time.Time
}

// WithSource sets the vacancy source
func WithSource(src Source) Option {
	return func(c *config) {
		c.source = src
	}
}

// WithStore sets the persistence store
func WithStore(store Store) Option {
	return func(c *config) {
		c.store = store
	}
}

// WithLogger sets the logger
func WithLogger(log *logging.Logger) Option {
	return func(c *config) {
		c.logger = log
	}
}

// WithPerPage sets the page size hint passed to the source
func WithPerPage(n int) Option {
	return func(c *config) {
		c.perPage = n
	}
}

// WithMatchAny switches keyword filtering to the disjunctive mode
func WithMatchAny(matchAny bool) Option {
	return func(c *config) {
		c.matchAny = matchAny
	}
}

// WithClock sets a custom clock
func WithClock(clock func() time.Time) Option {
	return func(c *config) {
		c.clock = clock
	}
}

// NewService builds Service from options
func NewService(opts ...Option) (Service, error) {
	cfg := &config{
		perPage: defaultPerPage,
		clock:   time.Now,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.source == nil {
		return nil, fmt.Errorf("vacancy.Service: source is required")
	}
	if cfg.store == nil {
		return nil, fmt.Errorf("vacancy.Service: store is required")
	}
	if cfg.logger == nil {
		cfg.logger = logging.NewNop()
	}

	return &service{
		source:   cfg.source,
		store:    cfg.store,
		log:      cfg.logger,
		perPage:  cfg.perPage,
		matchAny: cfg.matchAny,
		clock:    cfg.clock,
		validate: validator.New(),
	}, nil
}

// ServiceSettings carries the tunables NewServiceWithDeps needs
type ServiceSettings struct {
	PerPage  int
	MatchAny bool
}

// NewServiceWithDeps creates a Service with direct dependencies (Wire-compatible)
func NewServiceWithDeps(src Source, store Store, log *logging.Logger, s ServiceSettings) (Service, error) {
	return NewService(
		WithSource(src),
		WithStore(store),
		WithLogger(log),
		WithPerPage(s.PerPage),
		WithMatchAny(s.MatchAny),
	)
}

type service struct {
	source   Source
	store    Store
	log      *logging.Logger
	perPage  int
	matchAny bool
	clock    func() time.Time
	validate *validator.Validate
}

// Probe checks that the vacancy source is reachable
func (s *service) Probe(ctx context.Context) error {
	if err := s.source.Ping(ctx); err != nil {
		s.log.Error("vacancy source probe failed", "source", s.source.Name(), "err", err)
		return err
	}
	s.log.Debug("vacancy source reachable", "source", s.source.Name())
	return nil
}

// Search fetches vacancies for the query, stores new ones and returns the ranked top
func (s *service) Search(ctx context.Context, p Params) (Result, error) {
	p.Query = strings.TrimSpace(p.Query)
	p.Keywords = cleanKeywords(p.Keywords)
	if err := s.validateParams(p); err != nil {
		return Result{}, err
	}

	res := Result{
		RunID:     uuid.New(),
		FetchedAt: s.clock(),
	}
	log := s.log.With("run_id", res.RunID.String(), "query", p.Query)

	raws, err := s.source.Fetch(ctx, p.Query, s.perPage)
	if err != nil {
		log.Error("fetch failed", "source", s.source.Name(), "err", err)
		return Result{}, err
	}
	res.Fetched = len(raws)

	vacancies, skipped := NormalizeAll(raws)
	res.Skipped = len(skipped)
	for _, serr := range skipped {
		log.Warn("skipping malformed vacancy record", "err", serr)
	}

	for _, v := range vacancies {
		added, err := s.store.AppendIfAbsent(ctx, v)
		if err != nil {
			log.Error("failed to store vacancy", "vacancy_id", v.ID, "err", err)
			if res.StoreErr == nil {
				res.StoreErr = err
			}
			continue
		}
		if added {
			res.Stored++
		}
	}

	if _, err := ParseSalaryRange(p.SalaryRange); err != nil {
		res.RangeErr = err
	}

	q := Query{
		Keywords:    p.Keywords,
		SalaryRange: p.SalaryRange,
		Top:         p.Count,
		MatchAny:    s.matchAny,
	}
	res.Vacancies = q.Apply(vacancies, log)

	log.Info("search completed",
		"fetched", res.Fetched,
		"skipped", res.Skipped,
		"stored", res.Stored,
		"returned", len(res.Vacancies),
	)

	return res, nil
}

// Stored reads the store back and returns vacancies matching the criteria
func (s *service) Stored(ctx context.Context, c Criteria) ([]domain.Vacancy, error) {
	raws, err := s.store.ReadAll(ctx)
	if err != nil {
		return nil, err
	}

	vacancies, skipped := NormalizeAll(raws)
	for _, serr := range skipped {
		s.log.Warn("skipping malformed stored record", "err", serr)
	}

	out := make([]domain.Vacancy, 0, len(vacancies))
	for _, v := range vacancies {
		if c.match(v) {
			out = append(out, v)
		}
	}

	if c.Limit > 0 {
		out = TakeTop(out, c.Limit)
	}
	return out, nil
}

// Delete removes a stored vacancy; false means nothing was stored under id
func (s *service) Delete(ctx context.Context, id string) (bool, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return false, &domain.ValidationError{Field: "id", Reason: "must not be empty"}
	}

	deleted, err := s.store.Delete(ctx, id)
	if err != nil {
		s.log.Error("failed to delete vacancy", "vacancy_id", id, "err", err)
		return false, err
	}
	s.log.Info("vacancy delete", "vacancy_id", id, "deleted", deleted)
	return deleted, nil
}

// cleanKeywords trims keywords and drops blank ones; nil when none remain
func cleanKeywords(words []string) []string {
	var out []string
	for _, w := range words {
		if w = strings.TrimSpace(w); w != "" {
			out = append(out, w)
		}
	}
	return out
}

func (c Criteria) match(v domain.Vacancy) bool {
	if c.Employer != "" && (v.Employer == nil || v.Employer.Name != c.Employer) {
		return false
	}
	if c.Region != "" && (v.Region == nil || v.Region.Name != c.Region) {
		return false
	}
	if c.Currency != "" && (v.Salary == nil || v.Salary.Currency == nil || *v.Salary.Currency != c.Currency) {
		return false
	}
	return true
}

func (s *service) validateParams(p Params) error {
	err := s.validate.Struct(p)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &domain.ValidationError{
			Field:  strings.ToLower(fe.Field()),
			Reason: describeTag(fe.Tag()),
		}
	}
	return &domain.ValidationError{Reason: err.Error()}
}

func describeTag(tag string) string {
	switch tag {
	case "required":
		return "must not be empty"
	case "gt":
		return "must be a positive number"
	default:
		return "failed " + tag + " check"
	}
}
