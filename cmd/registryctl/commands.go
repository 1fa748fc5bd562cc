/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"bufio"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/suparena/entityregistry"
	"github.com/suparena/entityregistry/errors"
	"github.com/suparena/entityregistry/storagemodels"
)

const usage = `Commands:
  create <caller> <dna-hex> <price>      mint an entity owned by caller
  transfer <caller> <id> <new-owner>     move an entity to new-owner
  get <id>                               print one entity
  owned <owner>                          print the entities owned by owner
  replay [file|-]                        apply create/transfer lines in order
`

// entityView is the printed form of an entity.
type entityView struct {
	ID     uint32 `json:"id"`
	DNA    string `json:"dna"`
	Price  uint32 `json:"price"`
	Gender string `json:"gender"`
	Owner  string `json:"owner"`
}

func viewOf(e storagemodels.Entity) entityView {
	return entityView{
		ID:     e.ID,
		DNA:    hex.EncodeToString(e.DNA),
		Price:  e.Price,
		Gender: e.Gender.String(),
		Owner:  string(e.Owner),
	}
}

func execute(ctx context.Context, reg *entityregistry.Registry, args []string, stdin io.Reader, out io.Writer) error {
	if len(args) == 0 {
		return errors.NewValidationError("command", "missing command\n"+usage)
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "create":
		if len(rest) != 3 {
			return errors.NewValidationError("create", "usage: create <caller> <dna-hex> <price>")
		}
		dna, err := hex.DecodeString(rest[1])
		if err != nil {
			return errors.NewValidationError("dna", "must be hex encoded")
		}
		price, err := parseUint32("price", rest[2])
		if err != nil {
			return err
		}
		id, err := reg.CreateEntity(ctx, storagemodels.Identity(rest[0]), dna, price)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, id)
		return err

	case "transfer":
		if len(rest) != 3 {
			return errors.NewValidationError("transfer", "usage: transfer <caller> <id> <new-owner>")
		}
		id, err := parseUint32("id", rest[1])
		if err != nil {
			return err
		}
		return reg.TransferEntity(ctx, storagemodels.Identity(rest[0]), id, storagemodels.Identity(rest[2]))

	case "get":
		if len(rest) != 1 {
			return errors.NewValidationError("get", "usage: get <id>")
		}
		id, err := parseUint32("id", rest[0])
		if err != nil {
			return err
		}
		e, ok := reg.Entity(id)
		if !ok {
			return errors.NewEntityNotFoundError(id)
		}
		return writeJSON(out, viewOf(e))

	case "owned":
		if len(rest) != 1 {
			return errors.NewValidationError("owned", "usage: owned <owner>")
		}
		bucket := reg.EntitiesOf(storagemodels.Identity(rest[0]))
		sort.Slice(bucket, func(i, j int) bool { return bucket[i].ID < bucket[j].ID })
		views := make([]entityView, 0, len(bucket))
		for _, e := range bucket {
			views = append(views, viewOf(e))
		}
		return writeJSON(out, views)

	case "replay":
		if len(rest) > 1 {
			return errors.NewValidationError("replay", "usage: replay [file|-]")
		}
		in := stdin
		if len(rest) == 1 && rest[0] != "-" {
			f, err := os.Open(rest[0])
			if err != nil {
				return fmt.Errorf("open script: %w", err)
			}
			defer f.Close()
			in = f
		}
		return replay(ctx, reg, in, out)

	default:
		return errors.NewValidationError("command", fmt.Sprintf("unknown command %q\n%s", cmd, usage))
	}
}

// replay applies one create or transfer per line in order. Blank lines and
// lines starting with # are skipped. A rejected operation is reported and the
// script continues, the same as a failed call in an agreed ordering.
func replay(ctx context.Context, reg *entityregistry.Registry, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	applied, rejected, lineNo := 0, 0, 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		fields := strings.Fields(line)
		if fields[0] != "create" && fields[0] != "transfer" {
			return errors.NewValidationError("replay", fmt.Sprintf("line %d: only create and transfer may be replayed", lineNo))
		}

		if err := execute(ctx, reg, fields, nil, io.Discard); err != nil {
			if errors.IsValidationError(err) {
				return fmt.Errorf("line %d: %w", lineNo, err)
			}
			rejected++
			fmt.Fprintf(out, "line %d: %v\n", lineNo, err)
			continue
		}
		applied++
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read script: %w", err)
	}

	_, err := fmt.Fprintf(out, "applied %d, rejected %d, next id %d\n", applied, rejected, reg.NextID())
	return err
}

func parseUint32(field, s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, errors.NewValidationError(field, fmt.Sprintf("must be an unsigned 32-bit integer, got %q", s))
	}
	return uint32(v), nil
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
