package build

import (
	"context"

	"go.uber.org/zap"

	velocut "github.com/Eric-Lautanen/velocut-ffmpeg-the-third"
	"github.com/Eric-Lautanen/velocut-ffmpeg-the-third/emit"
	"github.com/Eric-Lautanen/velocut-ffmpeg-the-third/errors"
	"github.com/Eric-Lautanen/velocut-ffmpeg-the-third/manifest"
	"github.com/Eric-Lautanen/velocut-ffmpeg-the-third/probe"
	"github.com/Eric-Lautanen/velocut-ffmpeg-the-third/resolve"
	"github.com/Eric-Lautanen/velocut-ffmpeg-the-third/verify"
)

// Pipeline describes one build invocation. Zero-value fields get sensible
// defaults; Manifest is required.
type Pipeline struct {
	Manifest    *manifest.Manifest
	Target      velocut.Target
	SearchPaths []string

	// Resolver defaults to resolve.New().
	Resolver *resolve.Resolver
	// Emitter defaults to the standard emitter over Probe.
	Emitter emit.Emitter
	// Probe locates toolchain runtime archives. Nil disables probing.
	Probe *probe.Cache
	// Logger defaults to a no-op logger.
	Logger *zap.Logger
}

func (p *Pipeline) logger() *zap.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return zap.NewNop()
}

// Plan runs the pre-link stages in order: ambiguity resolution over the
// search paths, then directive emission. The returned stream must be placed
// after all compiled-object inputs in the link invocation.
func (p *Pipeline) Plan(ctx context.Context) (velocut.Stream, error) {
	if p.Manifest == nil {
		return nil, errors.InvalidInput(errors.PhaseManifest, "pipeline requires a manifest")
	}

	r := p.Resolver
	if r == nil {
		r = resolve.New()
	}
	repairs, err := r.Resolve(p.Manifest, p.Target, p.SearchPaths)
	if err != nil {
		return nil, err
	}
	if len(repairs) > 0 {
		p.logger().Info("repaired ambiguous link targets",
			zap.Int("repairs", len(repairs)))
	}

	em := p.Emitter
	if em == nil {
		em = emit.NewStandard(p.Probe)
	}
	stream, err := em.Emit(ctx, p.Manifest, p.Target)
	if err != nil {
		return nil, err
	}

	p.logger().Info("link plan ready",
		zap.String("target", p.Target.String()),
		zap.Int("directives", len(stream)))
	return stream, nil
}

// VerifyBinary checks the linked binary's dynamic imports against the
// allow-list. Call after the external build tool has produced the binary.
func (p *Pipeline) VerifyBinary(path string, allow verify.AllowList) error {
	return verify.Binary(path, allow)
}
