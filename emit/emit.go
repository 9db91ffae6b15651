package emit

import (
	"context"
	stderrors "errors"

	"go.uber.org/zap"

	velocut "github.com/Eric-Lautanen/velocut-ffmpeg-the-third"
	"github.com/Eric-Lautanen/velocut-ffmpeg-the-third/errors"
	"github.com/Eric-Lautanen/velocut-ffmpeg-the-third/manifest"
	"github.com/Eric-Lautanen/velocut-ffmpeg-the-third/probe"
)

// Emitter produces the directive stream for one build. Implementations must
// be deterministic: identical manifest and target yield identical streams.
type Emitter interface {
	Emit(ctx context.Context, m *manifest.Manifest, target velocut.Target) (velocut.Stream, error)
}

// Standard is the active Emitter implementation.
type Standard struct {
	// Probe locates toolchain runtime archives. Nil disables probing;
	// runtime entries are then linked without a search-path directive.
	Probe *probe.Cache
}

// NewStandard creates the standard emitter.
func NewStandard(p *probe.Cache) *Standard {
	return &Standard{Probe: p}
}

// Emit walks the manifest's enabled entries in group precedence and builds
// the stream. Search-path directives are emitted immediately before the
// first library that needs them and deduplicated.
//
// A runtime archive the probe cannot locate keeps its LinkLibrary directive
// but loses the SearchPath one: failure is deferred to link time, where the
// linker names the missing archive.
func (s *Standard) Emit(ctx context.Context, m *manifest.Manifest, target velocut.Target) (velocut.Stream, error) {
	var stream velocut.Stream
	pathSeen := make(map[string]bool)

	for _, e := range m.EnabledEntries(target) {
		dir := e.Dir
		if e.Group == manifest.GroupRuntime {
			d, err := s.runtimeDir(ctx, e.Name)
			if err != nil {
				return nil, err
			}
			dir = d
		}

		if dir != "" && !pathSeen[dir] {
			pathSeen[dir] = true
			stream = append(stream, velocut.SearchPath(dir))
		}
		stream = append(stream, velocut.LinkLibrary(e.Name, e.Mode))
	}

	Logger().Debug("emitted directive stream",
		zap.String("target", target.String()),
		zap.Int("directives", len(stream)))
	return stream, nil
}

// runtimeDir asks the probe where a runtime archive lives. Probe misses are
// recovered locally by omission.
func (s *Standard) runtimeDir(ctx context.Context, name string) (string, error) {
	if s.Probe == nil {
		return "", nil
	}

	artifact := "lib" + name + ".a"
	dir, err := s.Probe.FileDir(ctx, artifact)
	if err != nil {
		if stderrors.Is(err, errors.ProbeUnavailable(artifact)) {
			Logger().Warn("toolchain probe unavailable, deferring to link time",
				zap.String("artifact", artifact))
			return "", nil
		}
		return "", err
	}
	return dir, nil
}
