// SPDX-License-Identifier: EPL-2.0

// Package wav decodes and writes RIFF/WAVE sample files.
//
// Header parsing is done by github.com/go-audio/wav; sample data is then
// streamed straight from the data chunk through a small reusable byte buffer.
//
// # Supported Encodings
//
//   - 16-bit integer PCM, normalized as s / 32768
//   - 32-bit IEEE float, passed through unchanged
//
// Any channel count is accepted. Channels stay interleaved; the decoder never
// splits them. Other encodings and bit depths are rejected when the header is
// read, with errors that wrap audio.ErrFormat.
//
// # Decoding
//
//	src, err := wav.Decoder{}.Decode(file)
//	buf := make([]float32, 1024)
//	n, err := src.ReadSamples(buf)
//
// A read failure on the underlying file is reported wrapped in
// audio.ErrStorage.
//
// # Writing
//
// WriteWAV16 and WriteFloat32 write canonical 44-byte-header files, used for
// rendering engine output:
//
//	err := wav.WriteFloat32(file, 48000, 2, interleaved)
package wav
