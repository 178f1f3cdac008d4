// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 samples with github.com/hajimehoshi/go-mp3.
//
// # Supported Formats
//
// The decoder accepts:
//   - MPEG-1 and MPEG-2 Audio Layer III
//   - constant and variable bitrates
//   - mono and stereo streams
//
// # Decoding MP3 Files
//
//	file, _ := os.Open("pad.mp3")
//	src, err := mp3.Decoder{}.Decode(file)
//	if err != nil {
//	    // ErrNotMP3File when no MPEG frame decodes
//	}
//
//	buf := make([]float32, 1024)
//	n, err := src.ReadSamples(buf)
//
// # Output Format
//
// go-mp3 always produces 16-bit little-endian stereo, so every Source from
// this package reports:
//   - two interleaved channels, even for mono files
//   - float32 samples normalized as s / 32768
//   - the sample rate stored in the stream (usually 44.1 or 48 kHz)
//
// A byte left over from an odd-sized read is carried into the next call, so
// callers may pass buffers of any length.
//
// # Loading Into the Arena
//
// The engine picks this decoder for the .mp3 extension. Since the output is
// always stereo, enable downmixing to store mono material as one channel:
//
//	eng := romple.New(romple.WithDownmix(true))
//	buf, err := eng.LoadSample("pads/warm.mp3")
//
// Read failures on the underlying file are wrapped in audio.ErrStorage;
// streams go-mp3 cannot parse are wrapped in audio.ErrFormat.
package mp3
