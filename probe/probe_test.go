package probe

import (
	"context"
	"errors"
	"fmt"
	"testing"

	vcerrors "github.com/Eric-Lautanen/velocut-ffmpeg-the-third/errors"
)

// countingRunner fakes the compiler and records every invocation.
type countingRunner struct {
	invocations int
	output      string
	err         error
}

func (r *countingRunner) run(ctx context.Context, cc string, args ...string) ([]byte, error) {
	r.invocations++
	if r.err != nil {
		return nil, r.err
	}
	return []byte(r.output), nil
}

func TestFileDir(t *testing.T) {
	runner := &countingRunner{output: "/usr/lib/gcc/x86_64-w64-mingw32/12/libgcc_eh.a\n"}
	c := NewCacheWithRunner("x86_64-w64-mingw32-gcc", runner.run)

	dir, err := c.FileDir(context.Background(), "libgcc_eh.a")
	if err != nil {
		t.Fatalf("FileDir: %v", err)
	}
	if want := "/usr/lib/gcc/x86_64-w64-mingw32/12"; dir != want {
		t.Errorf("dir = %q, want %q", dir, want)
	}
}

func TestFileDirCachesResult(t *testing.T) {
	// Two lookups of the same artifact invoke the compiler exactly once.
	runner := &countingRunner{output: "/usr/lib/gcc/x86_64-w64-mingw32/12/libgcc_eh.a\n"}
	c := NewCacheWithRunner("x86_64-w64-mingw32-gcc", runner.run)

	first, err := c.FileDir(context.Background(), "libgcc_eh.a")
	if err != nil {
		t.Fatalf("first FileDir: %v", err)
	}
	second, err := c.FileDir(context.Background(), "libgcc_eh.a")
	if err != nil {
		t.Fatalf("second FileDir: %v", err)
	}
	if first != second {
		t.Errorf("cached dir %q != first dir %q", second, first)
	}
	if runner.invocations != 1 {
		t.Errorf("compiler invoked %d times, want 1", runner.invocations)
	}
}

func TestFileDirDistinctArtifacts(t *testing.T) {
	runner := &countingRunner{output: "/toolchain/lib/libgcc.a\n"}
	c := NewCacheWithRunner("gcc", runner.run)

	if _, err := c.FileDir(context.Background(), "libgcc.a"); err != nil {
		t.Fatalf("FileDir libgcc.a: %v", err)
	}
	if _, err := c.FileDir(context.Background(), "libgcc_eh.a"); err != nil {
		t.Fatalf("FileDir libgcc_eh.a: %v", err)
	}
	if runner.invocations != 2 {
		t.Errorf("compiler invoked %d times, want 2", runner.invocations)
	}
}

func TestFileDirUnresolved(t *testing.T) {
	tests := []struct {
		name   string
		output string
	}{
		{"echoed name back", "libgcc_eh.a\n"},
		{"empty output", "\n"},
		{"relative path", "lib/libgcc_eh.a\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &countingRunner{output: tt.output}
			c := NewCacheWithRunner("gcc", runner.run)

			_, err := c.FileDir(context.Background(), "libgcc_eh.a")
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, vcerrors.ProbeUnavailable("libgcc_eh.a")) {
				t.Errorf("err = %v, want probe_unavailable", err)
			}
		})
	}
}

func TestFileDirCachesMiss(t *testing.T) {
	// Negative results are cached too; no retry storm per build.
	runner := &countingRunner{err: fmt.Errorf("exec: not found")}
	c := NewCacheWithRunner("missing-gcc", runner.run)

	for i := 0; i < 3; i++ {
		if _, err := c.FileDir(context.Background(), "libgcc_eh.a"); err == nil {
			t.Fatal("expected error")
		}
	}
	if runner.invocations != 1 {
		t.Errorf("compiler invoked %d times, want 1", runner.invocations)
	}
}

func TestVersion(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"12.2.0\n", "12.2.0"},
		{"14\n", "14.0.0"},
		{"12.2\n", "12.2.0"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			runner := &countingRunner{output: tt.raw}
			c := NewCacheWithRunner("gcc", runner.run)

			v, err := c.Version(context.Background())
			if err != nil {
				t.Fatalf("Version: %v", err)
			}
			if v.String() != tt.want {
				t.Errorf("version = %s, want %s", v, tt.want)
			}
		})
	}
}

func TestVersionCached(t *testing.T) {
	runner := &countingRunner{output: "12.2.0\n"}
	c := NewCacheWithRunner("gcc", runner.run)

	for i := 0; i < 2; i++ {
		if _, err := c.Version(context.Background()); err != nil {
			t.Fatalf("Version: %v", err)
		}
	}
	if runner.invocations != 1 {
		t.Errorf("compiler invoked %d times, want 1", runner.invocations)
	}
}

func TestVersionUnparseable(t *testing.T) {
	runner := &countingRunner{output: "not-a-version\n"}
	c := NewCacheWithRunner("gcc", runner.run)

	if _, err := c.Version(context.Background()); err == nil {
		t.Fatal("expected error for unparseable version")
	}
	// Error is cached as well.
	if _, err := c.Version(context.Background()); err == nil {
		t.Fatal("expected cached error")
	}
	if runner.invocations != 1 {
		t.Errorf("compiler invoked %d times, want 1", runner.invocations)
	}
}
