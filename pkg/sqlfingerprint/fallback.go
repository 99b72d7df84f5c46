// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package sqlfingerprint

import (
	"github.com/DataDog/go-sqllexer"
)

// FallbackConfig configures the lexer based normalization used for queries
// the parser rejects.
type FallbackConfig struct {
	// Enabled turns the fallback on. When off, parse errors are returned.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// CollectTables reports the tables the query addresses.
	CollectTables bool `json:"collect_tables" yaml:"collect_tables"`

	// CollectCommands reports the commands of the query, e.g. SELECT or UPDATE.
	CollectCommands bool `json:"collect_commands" yaml:"collect_commands"`

	// CollectComments reports the comments of the query.
	CollectComments bool `json:"collect_comments" yaml:"collect_comments"`

	// ReplaceDigits specifies whether digits in table names and identifiers
	// should be obfuscated.
	ReplaceDigits bool `json:"replace_digits" yaml:"replace_digits"`

	// DollarQuotedFunc keeps "$func$" delimited bodies instead of replacing
	// them as a string.
	DollarQuotedFunc bool `json:"dollar_quoted_func" yaml:"dollar_quoted_func"`
}

// FallbackMetadata holds what the lexer collected from a query it normalized.
type FallbackMetadata struct {
	Size     int64    `json:"size" yaml:"size"`
	Tables   []string `json:"tables,omitempty" yaml:"tables,omitempty"`
	Commands []string `json:"commands,omitempty" yaml:"commands,omitempty"`
	Comments []string `json:"comments,omitempty" yaml:"comments,omitempty"`
}

// lexerNormalizer obfuscates and normalizes queries with go-sqllexer. It is
// safe for concurrent use: the lexer is created per call.
type lexerNormalizer struct {
	obfuscator *sqllexer.Obfuscator
	normalizer *sqllexer.Normalizer
}

func newLexerNormalizer(cfg FallbackConfig) *lexerNormalizer {
	return &lexerNormalizer{
		obfuscator: sqllexer.NewObfuscator(
			sqllexer.WithReplaceDigits(cfg.ReplaceDigits),
			sqllexer.WithDollarQuotedFunc(cfg.DollarQuotedFunc),
		),
		normalizer: sqllexer.NewNormalizer(
			sqllexer.WithCollectTables(cfg.CollectTables),
			sqllexer.WithCollectCommands(cfg.CollectCommands),
			sqllexer.WithCollectComments(cfg.CollectComments),
		),
	}
}

func (l *lexerNormalizer) normalize(query string) (*NormalizeResult, error) {
	out, md, err := sqllexer.ObfuscateAndNormalize(query, l.obfuscator, l.normalizer, sqllexer.WithDBMS(sqllexer.DBMSPostgres))
	if err != nil {
		return nil, err
	}
	res := &NormalizeResult{Query: out, Fallback: true}
	if md != nil {
		res.Metadata = &FallbackMetadata{
			Size:     int64(md.Size),
			Tables:   md.Tables,
			Commands: md.Commands,
			Comments: md.Comments,
		}
	}
	return res, nil
}
