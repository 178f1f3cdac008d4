// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis samples with github.com/jfreymuth/oggvorbis.
//
// # Decoding
//
//	file, _ := os.Open("loop.ogg")
//	src, err := vorbis.Decoder{}.Decode(file)
//	if errors.Is(err, vorbis.ErrNotVorbisFile) {
//	    // not an Ogg container, or not a Vorbis stream inside it
//	}
//
//	buf := make([]float32, 1024)
//	n, err := src.ReadSamples(buf)
//
// # Output Format
//
// The decoder already produces float32 data, so samples are written straight
// into the caller's buffer with no intermediate copy. Channel count and sample
// rate come from the stream's identification header. Reads are trimmed to
// whole frames: a stereo source asked for 5 samples returns at most 4.
//
// Packet errors after the header are wrapped in audio.ErrStorage.
package vorbis
