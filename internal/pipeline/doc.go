// Package pipeline implements the text stages of CSS asset rewriting.
//
// This package handles the two stages that only touch text:
//   - Reference location: finding url() occurrences with their byte spans
//   - Rewriting: applying replacements by offset and formatting url() values
//
// Filesystem work (path resolution, hashing, content sniffing, copying) is
// handled by the root cssurl package. This separation keeps the pipeline pure
// and trivially testable, while the root package owns every side effect.
package pipeline
