// SPDX-License-Identifier: EPL-2.0

// Package flac decodes FLAC samples with github.com/tphakala/flac.
//
// The decoder hands out whole frames of little-endian integer PCM. They are
// converted to float32 on the fly while the caller's buffer is filled, so a
// frame can span several reads.
package flac
