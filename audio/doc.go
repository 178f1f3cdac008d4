// SPDX-License-Identifier: EPL-2.0

// Package audio defines the streaming sample pipeline shared by the format
// decoders and the sample loader.
//
// # Sources and Decoders
//
// A Decoder turns a byte stream into a Source. A Source hands out interleaved
// float32 samples, normally in the range [-1.0, 1.0]:
//
//	dec, ok := registry.ForPath("kick.wav")
//	src, err := dec.Decode(file)
//	buf := make([]float32, 1024)
//	n, err := src.ReadSamples(buf)
//
// # Registry
//
// Registry maps a format key (usually the file extension) to a Decoder. It is
// safe for concurrent use:
//
//	reg := audio.NewRegistry()
//	reg.Register("wav", wav.Decoder{})
//	reg.Register("ogg", vorbis.Decoder{})
//
// # Downmixing
//
// Multi-channel data is normally kept interleaved. Wrap a Source in a
// Downmixer to average it into a single channel at load time:
//
//	mono := audio.NewDownmixer(src)
//
// # Errors
//
// ErrStorage, ErrFormat and ErrCapacity classify load failures. Decoders and
// loaders wrap them, so callers test with errors.Is:
//
//	if errors.Is(err, audio.ErrCapacity) {
//	    // sample pool is full
//	}
package audio
