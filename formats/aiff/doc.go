// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF sample files with github.com/go-audio/aiff.
//
// # Supported Formats
//
// Big-endian integer PCM at 8, 16, 24 and 32 bits. Each width is
// normalized by its full scale, so every sample lands in [-1.0, 1.0).
// Channels stay interleaved in file order.
//
// # Decoding AIFF Files
//
//	file, _ := os.Open("kick.aif")
//	src, err := aiff.Decoder{}.Decode(file)
//	if errors.Is(err, audio.ErrFormat) {
//	    // ErrNotAiffFile, ErrUnsupportedBitDepth or ErrUnsupportedAiffLayout
//	}
//
//	buf := make([]float32, 1024)
//	for {
//	    n, err := src.ReadSamples(buf)
//	    // use buf[:n]
//	    if err == io.EOF {
//	        break
//	    }
//	}
//
// go-audio needs an io.ReadSeeker. Files and bytes.Reader values are used
// directly; any other reader is read into memory first.
//
// # Buffering
//
// The source keeps one go-audio IntBuffer and grows it only when a caller
// asks for more samples than it holds, so a steady block size reads without
// allocating.
//
// # Errors
//
// Header problems wrap audio.ErrFormat. A failure while reading sample
// frames wraps audio.ErrStorage, which the engine reports as a file read
// error.
package aiff
