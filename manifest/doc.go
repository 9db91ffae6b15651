// Package manifest declares the external libraries a build links against.
//
// Each Entry names a library, its linkage mode (static or dynamic), the
// precedence group it links in, and a platform scope over the target triple.
// Entries are immutable once registered and keep their declaration order;
// downstream directive order depends on it.
//
// Manifests come from three places: Default() ships the FFmpeg stack the
// project embeds, Load() reads a YAML declaration file, and callers can
// Register() entries programmatically.
package manifest
