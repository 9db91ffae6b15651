package resolve

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	velocut "github.com/Eric-Lautanen/velocut-ffmpeg-the-third"
	vcerrors "github.com/Eric-Lautanen/velocut-ffmpeg-the-third/errors"
	"github.com/Eric-Lautanen/velocut-ffmpeg-the-third/manifest"
)

var windowsGNU = velocut.MustParseTarget("x86_64-pc-windows-gnu")

func staticManifest(t *testing.T, names ...string) *manifest.Manifest {
	t.Helper()
	m := manifest.New()
	for _, name := range names {
		if err := m.Register(manifest.Entry{
			Name:    name,
			Mode:    velocut.ModeStatic,
			Group:   manifest.GroupCodec,
			Enabled: true,
		}); err != nil {
			t.Fatal(err)
		}
	}
	return m
}

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("!<arch>\n"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func TestResolveMovesStubAside(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "libx264.a"))
	touch(t, filepath.Join(dir, "libx264.dll.a"))

	r := New()
	repairs, err := r.Resolve(staticManifest(t, "x264"), windowsGNU, []string{dir})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(repairs) != 1 {
		t.Fatalf("repairs = %d, want 1", len(repairs))
	}

	if exists(filepath.Join(dir, "libx264.dll.a")) {
		t.Error("import stub still reachable under its original name")
	}
	if !exists(filepath.Join(dir, "libx264.dll.a"+UnlinkedSuffix)) {
		t.Error("stub was not preserved under the unlinked name")
	}
	if !exists(filepath.Join(dir, "libx264.a")) {
		t.Error("true archive must never be touched")
	}
}

func TestResolveIdempotent(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "libx264.a"))
	touch(t, filepath.Join(dir, "libx264.dll.a"))
	touch(t, filepath.Join(dir, "libz.a"))
	touch(t, filepath.Join(dir, "libz.dll.a"))

	m := staticManifest(t, "x264", "z")
	r := New()

	first, err := r.Resolve(m, windowsGNU, []string{dir})
	if err != nil {
		t.Fatalf("first Resolve: %v", err)
	}
	if len(first) != 2 {
		t.Fatalf("first run repairs = %d, want 2", len(first))
	}

	second, err := r.Resolve(m, windowsGNU, []string{dir})
	if err != nil {
		t.Fatalf("second Resolve: %v", err)
	}
	if len(second) != 0 {
		t.Errorf("second run performed %d repairs, want 0", len(second))
	}
}

func TestResolveCleanTreeNoop(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "libx264.a"))

	r := New()
	repairs, err := r.Resolve(staticManifest(t, "x264"), windowsGNU, []string{dir})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(repairs) != 0 {
		t.Errorf("repairs = %d, want 0", len(repairs))
	}
}

func TestResolveStubOnlyFails(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "libz.dll.a"))

	r := New()
	_, err := r.Resolve(staticManifest(t, "z"), windowsGNU, []string{dir})
	if err == nil {
		t.Fatal("expected error when only an import stub exists")
	}
	if !errors.Is(err, vcerrors.AmbiguousLinkTarget("z", "", nil)) {
		t.Errorf("err = %v, want ambiguous_link_target", err)
	}
}

func TestResolveSkipsDynamicEntries(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "libsdl2.a"))
	touch(t, filepath.Join(dir, "libsdl2.dll.a"))

	m := manifest.New()
	if err := m.Register(manifest.Entry{
		Name:    "sdl2",
		Mode:    velocut.ModeDynamic,
		Group:   manifest.GroupSystem,
		Enabled: true,
	}); err != nil {
		t.Fatal(err)
	}

	r := New()
	repairs, err := r.Resolve(m, windowsGNU, []string{dir})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(repairs) != 0 {
		t.Errorf("dynamic entry repaired, want untouched")
	}
	if !exists(filepath.Join(dir, "libsdl2.dll.a")) {
		t.Error("dynamic entry's stub must stay reachable")
	}
}

func TestResolveEntryDir(t *testing.T) {
	// An entry's own install prefix is scanned even when it is not in the
	// build's search paths.
	prefix := t.TempDir()
	touch(t, filepath.Join(prefix, "libx264.a"))
	touch(t, filepath.Join(prefix, "libx264.dll.a"))

	m := manifest.New()
	if err := m.Register(manifest.Entry{
		Name:    "x264",
		Mode:    velocut.ModeStatic,
		Group:   manifest.GroupCodec,
		Enabled: true,
		Dir:     prefix,
	}); err != nil {
		t.Fatal(err)
	}

	r := New()
	repairs, err := r.Resolve(m, windowsGNU, nil)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(repairs) != 1 {
		t.Fatalf("repairs = %d, want 1", len(repairs))
	}
}

func TestScanStates(t *testing.T) {
	t.Run("clean", func(t *testing.T) {
		dir := t.TempDir()
		touch(t, filepath.Join(dir, "libz.a"))

		state, err := New().Scan(staticManifest(t, "z"), windowsGNU, []string{dir})
		if err != nil {
			t.Fatalf("Scan: %v", err)
		}
		if state != StateClean {
			t.Errorf("state = %v, want clean", state)
		}
	})

	t.Run("conflicted", func(t *testing.T) {
		dir := t.TempDir()
		touch(t, filepath.Join(dir, "libz.a"))
		touch(t, filepath.Join(dir, "libz.dll.a"))

		state, err := New().Scan(staticManifest(t, "z"), windowsGNU, []string{dir})
		if err != nil {
			t.Fatalf("Scan: %v", err)
		}
		if state != StateConflicted {
			t.Errorf("state = %v, want conflicted", state)
		}
	})

	t.Run("clean after resolve", func(t *testing.T) {
		dir := t.TempDir()
		touch(t, filepath.Join(dir, "libz.a"))
		touch(t, filepath.Join(dir, "libz.dll.a"))

		m := staticManifest(t, "z")
		r := New()
		if _, err := r.Resolve(m, windowsGNU, []string{dir}); err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		state, err := r.Scan(m, windowsGNU, []string{dir})
		if err != nil {
			t.Fatalf("Scan: %v", err)
		}
		if state != StateClean {
			t.Errorf("state = %v, want clean after repair", state)
		}
	})

	t.Run("scan never mutates", func(t *testing.T) {
		dir := t.TempDir()
		touch(t, filepath.Join(dir, "libz.a"))
		touch(t, filepath.Join(dir, "libz.dll.a"))

		if _, err := New().Scan(staticManifest(t, "z"), windowsGNU, []string{dir}); err != nil {
			t.Fatalf("Scan: %v", err)
		}
		if !exists(filepath.Join(dir, "libz.dll.a")) {
			t.Error("Scan must not touch the filesystem")
		}
	})
}
