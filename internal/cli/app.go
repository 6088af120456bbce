package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/honeycarbs/hh-vacancies/internal/domain"
	"github.com/honeycarbs/hh-vacancies/internal/domain/vacancy"
	"github.com/honeycarbs/hh-vacancies/pkg/logging"
)

// ErrInputClosed is returned when input ends before all parameters are read
var ErrInputClosed = errors.New("cli: input closed")

// Exporter receives the ranked result of a search
type Exporter interface {
	Export(ctx context.Context, vacancies []domain.Vacancy) (int, error)
}

// App is the interactive console front end
type App struct {
	svc      vacancy.Service
	in       *bufio.Scanner
	out      io.Writer
	logger   *logging.Logger
	exporter Exporter
}

// Option configures App
type Option func(*App)

// WithLogger sets the logger
func WithLogger(log *logging.Logger) Option {
	return func(a *App) {
		a.logger = log
	}
}

// WithExporter enables exporting ranked results after each search
func WithExporter(e Exporter) Option {
	return func(a *App) {
		a.exporter = e
	}
}

// New creates an App reading parameters from in and printing to out
func New(svc vacancy.Service, in io.Reader, out io.Writer, opts ...Option) *App {
	a := &App{
		svc:    svc,
		in:     bufio.NewScanner(in),
		out:    out,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run probes the source, collects the search parameters, runs one search and prints the result.
// Stage failures are printed and end the run with "no results"; only closed input is returned as an error
func (a *App) Run(ctx context.Context) error {
	a.println("hh.ru vacancy search")
	a.println("--------------------")

	if err := a.svc.Probe(ctx); err != nil {
		a.stageFailed("connectivity check", err)
		a.println(noResults)
		return nil
	}

	params, err := a.readParams()
	if err != nil {
		return err
	}

	res, err := a.svc.Search(ctx, params)
	if err != nil {
		a.stageFailed(searchStage(err), err)
		a.println(noResults)
		return nil
	}

	if res.RangeErr != nil {
		a.printf("Warning: salary range ignored: %v\n", res.RangeErr)
	}
	if res.StoreErr != nil {
		a.printf("Warning: some vacancies were not saved: %v\n", res.StoreErr)
	}
	if res.Skipped > 0 {
		a.printf("Warning: %d malformed record(s) skipped\n", res.Skipped)
	}

	printVacancies(a.out, res.Vacancies)

	if a.exporter != nil && len(res.Vacancies) > 0 {
		n, err := a.exporter.Export(ctx, res.Vacancies)
		if err != nil {
			a.stageFailed("export", err)
		} else {
			a.printf("Exported %d vacancies to Google Sheets\n", n)
		}
	}

	a.printf("\nSearch finished: fetched %d, new %d, shown %d\n", res.Fetched, res.Stored, len(res.Vacancies))
	a.logger.Info("console search finished", "run_id", res.RunID.String(), "shown", len(res.Vacancies))
	return nil
}

func (a *App) readParams() (vacancy.Params, error) {
	var p vacancy.Params

	for {
		line, err := a.prompt("Search query: ")
		if err != nil {
			return p, err
		}
		if line != "" {
			p.Query = line
			break
		}
		a.println("Query must not be empty.")
	}

	for {
		line, err := a.prompt("How many vacancies to show? ")
		if err != nil {
			return p, err
		}
		n, err := strconv.Atoi(line)
		if err == nil && n > 0 {
			p.Count = n
			break
		}
		a.println("Enter a positive whole number.")
	}

	line, err := a.prompt("Filter keywords (space separated, optional): ")
	if err != nil {
		return p, err
	}
	p.Keywords = strings.Fields(line)

	line, err = a.prompt("Salary range (e.g. 100000-150000, 100000 or -150000, optional): ")
	if err != nil {
		return p, err
	}
	p.SalaryRange = line

	return p, nil
}

func (a *App) prompt(label string) (string, error) {
	fmt.Fprint(a.out, label)
	if !a.in.Scan() {
		if err := a.in.Err(); err != nil {
			return "", fmt.Errorf("cli: read input: %w", err)
		}
		return "", ErrInputClosed
	}
	return strings.TrimSpace(a.in.Text()), nil
}

func (a *App) stageFailed(stage string, err error) {
	a.logger.Error("stage failed", "stage", stage, "err", err)
	a.printf("Error during %s: %v\n", stage, err)
}

func (a *App) println(s string) {
	fmt.Fprintln(a.out, s)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func searchStage(err error) string {
	var (
		verr *domain.ValidationError
		ferr *domain.FetchError
	)
	switch {
	case errors.As(err, &verr):
		return "parameter validation"
	case errors.As(err, &ferr):
		return "fetch"
	default:
		return "search"
	}
}
