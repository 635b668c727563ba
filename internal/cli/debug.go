package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/julianstephens/streaklit/internal/storage"
)

type DebugCmd struct {
	DBPath *DebugDBPathCmd `cmd:"" help:"Show store path."`
	Keys   *DebugKeysCmd   `cmd:"" help:"List stored keys."`
	Dump   *DebugDumpCmd   `cmd:"" help:"Dump the raw JSON stored under a key."`
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *Context) error {
	output := map[string]string{
		"path": ctx.Store.GetConfigPath(),
	}

	jsonBytes, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}

	ctx.println(string(jsonBytes))
	return nil
}

type DebugKeysCmd struct{}

func (cmd *DebugKeysCmd) Run(ctx *Context) error {
	keys, err := ctx.Data.Keys()
	if err != nil {
		return fmt.Errorf("failed to list keys: %w", err)
	}
	for _, k := range keys {
		ctx.println(k)
	}
	return nil
}

type DebugDumpCmd struct {
	Key string `arg:"" help:"Key to dump."`
}

func (cmd *DebugDumpCmd) Run(ctx *Context) error {
	raw, err := ctx.Data.Raw(cmd.Key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("key not found: %s", cmd.Key)
		}
		return fmt.Errorf("failed to read key: %w", err)
	}

	var out bytes.Buffer
	if err := json.Indent(&out, raw, "", "  "); err != nil {
		// Show malformed values as stored
		ctx.println(string(raw))
		return nil
	}
	ctx.println(out.String())
	return nil
}
