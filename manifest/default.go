package manifest

import velocut "github.com/Eric-Lautanen/velocut-ffmpeg-the-third"

// Default returns the manifest for the FFmpeg stack the project embeds:
// the component libraries, the external codecs they require, the Windows
// system libraries FFmpeg pulls in, and the MinGW runtime archives.
//
// Declaration order matters. Within each group, dependents come before
// their dependencies so that a single left-to-right linker pass resolves
// every symbol.
func Default() *Manifest {
	m := New()

	// FFmpeg component libraries, most dependent first.
	for _, name := range []string{
		"avdevice", "avfilter", "avformat", "avcodec",
		"swresample", "swscale", "avutil",
	} {
		m.MustRegister(Entry{
			Name:    name,
			Mode:    velocut.ModeStatic,
			Group:   GroupPrimary,
			Enabled: true,
		})
	}

	// External codec libraries.
	m.MustRegister(Entry{
		Name:    "x264",
		Mode:    velocut.ModeStatic,
		Group:   GroupCodec,
		Enabled: true,
	})
	m.MustRegister(Entry{
		Name:    "z",
		Mode:    velocut.ModeStatic,
		Group:   GroupCodec,
		Enabled: true,
	})

	// Windows system libraries referenced by the FFmpeg component libs.
	for _, name := range []string{
		"bcrypt", "secur32", "ws2_32", "ole32", "user32",
		"shlwapi", "strmiids", "mfuuid", "vfw32",
	} {
		m.MustRegister(Entry{
			Name:      name,
			Mode:      velocut.ModeStatic,
			Group:     GroupSystem,
			Enabled:   true,
			Platforms: []string{"windows"},
		})
	}

	// MinGW runtime archives; their directory comes from the toolchain probe.
	for _, name := range []string{"gcc_eh", "gcc"} {
		m.MustRegister(Entry{
			Name:      name,
			Mode:      velocut.ModeStatic,
			Group:     GroupRuntime,
			Enabled:   true,
			Platforms: []string{"windows"},
		})
	}

	return m
}
