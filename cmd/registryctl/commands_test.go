/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/entityregistry"
	"github.com/suparena/entityregistry/errors"
)

func TestExecuteCreateAndGet(t *testing.T) {
	ctx := context.Background()
	reg := entityregistry.New()
	var out bytes.Buffer

	require.NoError(t, execute(ctx, reg, []string{"create", "alice", "0a0b0c", "100"}, nil, &out))
	assert.Equal(t, "1\n", out.String())

	out.Reset()
	require.NoError(t, execute(ctx, reg, []string{"get", "1"}, nil, &out))
	var got entityView
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, entityView{ID: 1, DNA: "0a0b0c", Price: 100, Gender: "Female", Owner: "alice"}, got)
}

func TestExecuteTransferAndOwned(t *testing.T) {
	ctx := context.Background()
	reg := entityregistry.New()

	for _, args := range [][]string{
		{"create", "alice", "01", "1"},
		{"create", "alice", "0102", "2"},
		{"transfer", "alice", "1", "bob"},
	} {
		require.NoError(t, execute(ctx, reg, args, nil, &bytes.Buffer{}), "args %v", args)
	}

	var out bytes.Buffer
	require.NoError(t, execute(ctx, reg, []string{"owned", "bob"}, nil, &out))
	var views []entityView
	require.NoError(t, json.Unmarshal(out.Bytes(), &views))
	require.Len(t, views, 1)
	assert.Equal(t, uint32(1), views[0].ID)

	out.Reset()
	require.NoError(t, execute(ctx, reg, []string{"owned", "nobody"}, nil, &out))
	assert.Equal(t, "[]\n", out.String())
}

func TestExecuteErrors(t *testing.T) {
	ctx := context.Background()
	reg := entityregistry.New()

	tests := []struct {
		name  string
		args  []string
		check func(error) bool
	}{
		{"NoCommand", nil, errors.IsValidationError},
		{"UnknownCommand", []string{"burn", "1"}, errors.IsValidationError},
		{"BadHex", []string{"create", "alice", "zz", "1"}, errors.IsValidationError},
		{"BadPrice", []string{"create", "alice", "01", "-1"}, errors.IsValidationError},
		{"PriceTooLarge", []string{"create", "alice", "01", "4294967296"}, errors.IsValidationError},
		{"WrongArity", []string{"transfer", "alice", "1"}, errors.IsValidationError},
		{"TransferMissing", []string{"transfer", "alice", "99", "bob"}, errors.IsNotFound},
		{"GetMissing", []string{"get", "99"}, errors.IsNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := execute(ctx, reg, tt.args, nil, &bytes.Buffer{})
			assert.True(t, tt.check(err), "unexpected error %v", err)
		})
	}
	assert.Equal(t, uint32(0), reg.NextID(), "failed commands must not mint ids")
}

func TestReplay(t *testing.T) {
	ctx := context.Background()
	script := strings.Join([]string{
		"# alice mints two, gives one to bob",
		"create alice 0102 100",
		"create alice 0a 50",
		"",
		"transfer alice 2 bob",
		"transfer alice 99 bob",
	}, "\n")

	t.Run("Stdin", func(t *testing.T) {
		reg := entityregistry.New()
		var out bytes.Buffer
		require.NoError(t, execute(ctx, reg, []string{"replay"}, strings.NewReader(script), &out))

		assert.Contains(t, out.String(), "line 6:")
		assert.Contains(t, out.String(), "applied 3, rejected 1, next id 2")
		e, ok := reg.Entity(2)
		require.True(t, ok)
		assert.Equal(t, "bob", string(e.Owner))
	})

	t.Run("File", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "ops.txt")
		require.NoError(t, os.WriteFile(path, []byte(script), 0o600))

		reg := entityregistry.New()
		var out bytes.Buffer
		require.NoError(t, execute(ctx, reg, []string{"replay", path}, nil, &out))
		assert.Len(t, reg.EntitiesOf("alice"), 1)
	})

	t.Run("MalformedLineStops", func(t *testing.T) {
		reg := entityregistry.New()
		err := execute(ctx, reg, []string{"replay", "-"}, strings.NewReader("create alice 01 1\nget 1\n"), &bytes.Buffer{})
		assert.True(t, errors.IsValidationError(err))
		assert.Equal(t, uint32(1), reg.NextID())
	})
}
