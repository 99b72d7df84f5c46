// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package command

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/DataDog/datadog-go/v5/statsd"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/DataDog/sqlfingerprint/pkg/config"
	"github.com/DataDog/sqlfingerprint/pkg/errors"
	"github.com/DataDog/sqlfingerprint/pkg/sqlfingerprint"
	"github.com/DataDog/sqlfingerprint/pkg/util/log"
)

// maxQuerySize bounds a single line read from a query file.
const maxQuerySize = 16 * 1024 * 1024

// QueryFunc processes one query.
type QueryFunc func(query string) (interface{}, error)

// TextFunc renders a successful result for the text output format.
type TextFunc func(v interface{}) string

// Result is the outcome of one query. Exactly one of Result and Error is set.
type Result struct {
	Query  string             `json:"query" yaml:"query"`
	Result interface{}        `json:"result,omitempty" yaml:"result,omitempty"`
	Error  *errors.QueryError `json:"error,omitempty" yaml:"error,omitempty"`
}

// Runner processes a batch of queries for a subcommand and prints the results.
type Runner struct {
	Config *config.Config
	Engine *sqlfingerprint.Engine

	params *GlobalParams
	in     io.Reader
	out    io.Writer
	statsd *statsd.Client
}

// Option adjusts the engine configuration of a Runner.
type Option func(*sqlfingerprint.Config)

// WithTokens makes the engine record the hashed tokens of fingerprints.
func WithTokens() Option {
	return func(c *sqlfingerprint.Config) { c.Tokens = true }
}

// NewRunner loads the configuration, applies the global flags on top of it,
// sets up logging and starts an engine. Stop must be called once done.
func NewRunner(cmd *cobra.Command, params *GlobalParams, opts ...Option) (*Runner, error) {
	cfg, err := config.Load(params.ConfFilePath)
	if err != nil {
		return nil, err
	}
	applyFlags(cfg, params)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := config.SetupLogger(cfg.GetString(config.LogLevel), cfg.GetString(config.LogFile)); err != nil {
		return nil, err
	}
	if params.NoColor {
		color.NoColor = true
	}

	r := &Runner{
		Config: cfg,
		params: params,
		in:     cmd.InOrStdin(),
		out:    cmd.OutOrStdout(),
	}
	ec := cfg.Engine()
	ec.Logger = log.Adapter{}
	if cfg.GetBool(config.StatsdEnabled) {
		addr := cfg.GetString(config.StatsdAddr)
		client, err := statsd.New(addr)
		if err != nil {
			return nil, fmt.Errorf("unable to create statsd client for %s: %w", addr, err)
		}
		r.statsd = client
		ec.Statsd = client
	}
	for _, opt := range opts {
		opt(&ec)
	}
	r.Engine = sqlfingerprint.NewEngine(ec)
	return r, nil
}

func applyFlags(cfg *config.Config, params *GlobalParams) {
	if params.LogLevel != "" {
		cfg.Set(config.LogLevel, params.LogLevel)
	}
	if params.Format != "" {
		cfg.Set(config.OutputFormat, params.Format)
	}
	if params.Tokens {
		cfg.Set(config.OutputTokens, true)
	}
	if params.StatsdAddr != "" {
		cfg.Set(config.StatsdEnabled, true)
		cfg.Set(config.StatsdAddr, params.StatsdAddr)
	}
	if params.Workers != 0 {
		cfg.Set(config.Workers, params.Workers)
	}
}

// Stop stops the engine, which reports its stats one last time, then
// flushes the stats client and the logs.
func (r *Runner) Stop() {
	r.Engine.Stop()
	if r.statsd != nil {
		if err := r.statsd.Close(); err != nil {
			log.Debugf("unable to close statsd client: %v", err)
		}
	}
	log.Flush()
}

// Run processes the queries given as args, or read from the input when
// there are none, and prints one result per query in input order. It fails
// if any query failed.
func (r *Runner) Run(ctx context.Context, args []string, fn QueryFunc, text TextFunc) error {
	queries, err := r.queries(args)
	if err != nil {
		return err
	}
	results, err := process(ctx, queries, r.Config.GetInt(config.Workers), fn)
	if err != nil {
		return err
	}
	if err := writeResults(r.out, r.Config.GetString(config.OutputFormat), results, text); err != nil {
		return err
	}
	failed := 0
	for _, res := range results {
		if res.Error != nil {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d queries failed", failed, len(results))
	}
	return nil
}

// Print writes v on its own in the configured format.
func (r *Runner) Print(v interface{}, text string) error {
	return writeValue(r.out, r.Config.GetString(config.OutputFormat), v, text)
}

func (r *Runner) queries(args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	in := r.in
	if f := r.params.File; f != "" && f != "-" {
		file, err := os.Open(f)
		if err != nil {
			return nil, err
		}
		defer file.Close()
		in = file
	}
	queries, err := readQueries(in)
	if err != nil {
		return nil, err
	}
	if len(queries) == 0 {
		return nil, fmt.Errorf("no queries given")
	}
	return queries, nil
}

// readQueries reads one query per line, skipping blank lines.
func readQueries(in io.Reader) ([]string, error) {
	var queries []string
	s := bufio.NewScanner(in)
	s.Buffer(make([]byte, 0, 64*1024), maxQuerySize)
	for s.Scan() {
		line := strings.TrimRight(s.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		queries = append(queries, line)
	}
	return queries, s.Err()
}

// process runs fn over queries with at most workers calls in flight. Results
// keep the order of queries; a failed query does not stop the others.
func process(ctx context.Context, queries []string, workers int, fn QueryFunc) ([]Result, error) {
	results := make([]Result, len(queries))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, query := range queries {
		i, query := i, query
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i].Query = query
			v, err := fn(query)
			if err != nil {
				log.Debugf("query %d failed: %v", i+1, err)
				results[i].Error = queryError(err)
				return nil
			}
			results[i].Result = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func queryError(err error) *errors.QueryError {
	if qe, ok := errors.AsQueryError(err); ok {
		return qe
	}
	return &errors.QueryError{Message: err.Error()}
}
