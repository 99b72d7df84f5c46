// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package log

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScrub(t *testing.T) {
	for _, tt := range []struct {
		in, out string
	}{
		{
			"CREATE ROLE r WITH LOGIN PASSWORD 'hunter2'",
			"CREATE ROLE r WITH LOGIN PASSWORD '********'",
		},
		{
			"alter user bob password 'it''s secret' valid until 'infinity'",
			"alter user bob password '********' valid until 'infinity'",
		},
		{
			"CREATE SUBSCRIPTION s CONNECTION 'host=db password=hunter2 dbname=app' PUBLICATION p",
			"CREATE SUBSCRIPTION s CONNECTION 'host=db password=******** dbname=app' PUBLICATION p",
		},
		{
			"could not connect to postgres://app:hunter2@db:5432/app",
			"could not connect to postgres://app:********@db:5432/app",
		},
		{
			"password: hunter2",
			"password: ********",
		},
		{
			"SELECT * FROM users WHERE id = 1",
			"SELECT * FROM users WHERE id = 1",
		},
	} {
		assert.Equal(t, tt.out, Scrub(tt.in))
	}
}
