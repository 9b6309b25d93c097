package cli

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rshade/ecoshare/internal/config"
	"github.com/rshade/ecoshare/internal/engine/cache"
	"github.com/rshade/ecoshare/internal/ingest"
	"github.com/rshade/ecoshare/internal/logging"
)

// openReportCache returns the report cache configured for this invocation,
// or a disabled store when caching is turned off or unavailable.
func openReportCache(cmd *cobra.Command) *cache.FileStore {
	cfg := config.GetGlobalConfig()
	noCache, _ := cmd.Flags().GetBool("no-cache")
	if noCache || !cfg.Cache.Enabled {
		return cache.Disabled()
	}

	ttl := cfg.Cache.TTLSeconds
	if flagTTL, _ := cmd.Flags().GetInt("cache-ttl"); flagTTL > 0 {
		ttl = flagTTL
	}

	store, err := cache.NewFileStore(cfg.Cache.Directory, time.Duration(ttl)*time.Second)
	if err != nil {
		logging.FromContext(cmd.Context()).Warn().Err(err).Msg("report cache unavailable")
		return cache.Disabled()
	}

	if removed, cleanErr := store.CleanupExpired(); cleanErr != nil {
		logging.FromContext(cmd.Context()).Debug().Err(cleanErr).Msg("pruning report cache")
	} else if removed > 0 {
		logging.FromContext(cmd.Context()).Debug().Int("removed", removed).Msg("pruned expired cache entries")
	}
	return store
}

// inputDigest hashes the content of every input file. It returns false when
// an input cannot be hashed without consuming it, such as stdin.
func inputDigest(paths []string) (string, bool) {
	h := sha256.New()
	for _, path := range paths {
		if path == ingest.StdinPath {
			return "", false
		}
		f, err := os.Open(path)
		if err != nil {
			return "", false
		}
		_, err = io.Copy(h, f)
		_ = f.Close()
		if err != nil {
			return "", false
		}
		_, _ = fmt.Fprintf(h, "\x00%s\x00", path)
	}
	return hex.EncodeToString(h.Sum(nil)), true
}

// cachedReport returns the cached value for key or computes, stores and
// returns a fresh one. Cache failures never fail the command.
func cachedReport[T any](
	ctx context.Context,
	store *cache.FileStore,
	key string,
	compute func() (T, error),
) (T, error) {
	log := logging.FromContext(ctx)

	if store.Enabled() && key != "" {
		v, err := cache.GetJSON[T](store, key)
		if err == nil {
			log.Debug().Ctx(ctx).Str("cache_key", key).Msg("report served from cache")
			return v, nil
		}
		if !errors.Is(err, cache.ErrCacheNotFound) && !errors.Is(err, cache.ErrCacheExpired) {
			log.Warn().Ctx(ctx).Err(err).Msg("reading report cache")
		}
	}

	v, err := compute()
	if err != nil {
		return v, err
	}

	if store.Enabled() && key != "" {
		if setErr := cache.SetJSON(store, key, v); setErr != nil {
			log.Warn().Ctx(ctx).Err(setErr).Msg("writing report cache")
		}
	}
	return v, nil
}
