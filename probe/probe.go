package probe

import (
	"context"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"github.com/coreos/go-semver/semver"
	"github.com/xyproto/env/v2"
	"go.uber.org/zap"

	"github.com/Eric-Lautanen/velocut-ffmpeg-the-third/errors"
)

// Runner invokes the compiler and returns its combined output. Injectable
// so tests can count and fake invocations.
type Runner func(ctx context.Context, cc string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, cc string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, cc, args...).Output()
}

// DefaultCompiler returns the compiler binary to probe, from $CC with a
// plain "cc" fallback.
func DefaultCompiler() string {
	return env.Str("CC", "cc")
}

type dirResult struct {
	dir string
	err error
}

// Cache resolves compiler artifact locations and memoizes them, keyed by
// artifact name. A Cache is scoped to one build invocation; create a fresh
// one per build so that repeated or parallel invocations do not interfere.
// Thread-safe.
type Cache struct {
	cc  string
	run Runner

	mu          sync.Mutex
	dirs        map[string]dirResult
	version     *semver.Version
	versionErr  error
	versionDone bool
}

// NewCache creates a cache probing the given compiler binary.
func NewCache(cc string) *Cache {
	return NewCacheWithRunner(cc, execRunner)
}

// NewCacheWithRunner creates a cache with a custom compiler runner.
func NewCacheWithRunner(cc string, run Runner) *Cache {
	return &Cache{
		cc:   cc,
		run:  run,
		dirs: make(map[string]dirResult),
	}
}

// Compiler returns the compiler binary this cache probes.
func (c *Cache) Compiler() string {
	return c.cc
}

// FileDir asks the compiler where artifact lives and returns the containing
// directory. The compiler is invoked at most once per artifact name for the
// lifetime of the cache, including negative results.
//
// When the compiler cannot resolve the artifact it echoes the bare name
// back; that and any invocation failure yield a ProbeUnavailable error,
// which callers treat as non-fatal.
func (c *Cache) FileDir(ctx context.Context, artifact string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if r, ok := c.dirs[artifact]; ok {
		return r.dir, r.err
	}

	r := c.probeFileDir(ctx, artifact)
	c.dirs[artifact] = r
	return r.dir, r.err
}

func (c *Cache) probeFileDir(ctx context.Context, artifact string) dirResult {
	out, err := c.run(ctx, c.cc, "-print-file-name="+artifact)
	if err != nil {
		Logger().Warn("compiler probe failed",
			zap.String("cc", c.cc),
			zap.String("artifact", artifact),
			zap.Error(err))
		return dirResult{err: errors.New(errors.PhaseProbe, errors.KindProbeUnavailable).
			Library(artifact).
			Cause(err).
			Detail("compiler invocation failed").
			Build()}
	}

	line, _, _ := strings.Cut(strings.TrimSpace(string(out)), "\n")
	line = strings.TrimSpace(line)
	if line == "" || line == artifact || !filepath.IsAbs(line) {
		Logger().Debug("compiler did not resolve artifact",
			zap.String("cc", c.cc),
			zap.String("artifact", artifact),
			zap.String("output", line))
		return dirResult{err: errors.ProbeUnavailable(artifact)}
	}

	dir := filepath.Dir(line)
	Logger().Debug("resolved compiler artifact",
		zap.String("artifact", artifact),
		zap.String("dir", dir))
	return dirResult{dir: dir}
}

// Version reports the compiler's version, parsed from -dumpversion.
// Cached like FileDir.
func (c *Cache) Version(ctx context.Context) (*semver.Version, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.versionDone {
		return c.version, c.versionErr
	}
	c.versionDone = true

	out, err := c.run(ctx, c.cc, "-dumpversion")
	if err != nil {
		c.versionErr = errors.New(errors.PhaseProbe, errors.KindProbeUnavailable).
			Library(c.cc).
			Cause(err).
			Detail("-dumpversion failed").
			Build()
		return nil, c.versionErr
	}

	raw := strings.TrimSpace(string(out))
	v, err := semver.NewVersion(normalizeVersion(raw))
	if err != nil {
		c.versionErr = errors.New(errors.PhaseProbe, errors.KindInvalidInput).
			Library(c.cc).
			Cause(err).
			Detail("cannot parse compiler version %q", raw).
			Build()
		return nil, c.versionErr
	}

	c.version = v
	return v, nil
}

// normalizeVersion pads partial versions ("14", "12.2") to full x.y.z form.
func normalizeVersion(raw string) string {
	parts := strings.Split(raw, ".")
	for len(parts) < 3 {
		parts = append(parts, "0")
	}
	return strings.Join(parts[:3], ".")
}
