// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

const headerSize = 44

// WriteWAV16 writes interleaved 16-bit PCM samples as a canonical WAV file.
func WriteWAV16(w io.Writer, sampleRate, channels int, samples []int16) error {
	if channels <= 0 {
		return ErrInvalidChannels
	}

	if err := writeHeader(w, formatPCM, sampleRate, channels, 16, len(samples)*2); err != nil {
		return err
	}

	return writeChunked(w, len(samples), 2, func(dst []byte, i int) {
		binary.LittleEndian.PutUint16(dst, uint16(samples[i]))
	})
}

// WriteFloat32 writes interleaved float samples as a 32-bit IEEE float WAV file.
func WriteFloat32(w io.Writer, sampleRate, channels int, samples []float32) error {
	if channels <= 0 {
		return ErrInvalidChannels
	}

	if err := writeHeader(w, formatIEEEFloat, sampleRate, channels, 32, len(samples)*4); err != nil {
		return err
	}

	return writeChunked(w, len(samples), 4, func(dst []byte, i int) {
		binary.LittleEndian.PutUint32(dst, math.Float32bits(samples[i]))
	})
}

func writeHeader(w io.Writer, format uint16, sampleRate, channels, bits, dataSize int) error {
	blockAlign := channels * bits / 8
	header := make([]byte, headerSize)

	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], uint32(36+dataSize))
	copy(header[8:12], "WAVE")

	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16)
	binary.LittleEndian.PutUint16(header[20:22], format)
	binary.LittleEndian.PutUint16(header[22:24], uint16(channels))
	binary.LittleEndian.PutUint32(header[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(header[28:32], uint32(sampleRate*blockAlign))
	binary.LittleEndian.PutUint16(header[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(header[34:36], uint16(bits))

	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], uint32(dataSize))

	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("writing WAV header: %w", err)
	}

	return nil
}

// writeChunked encodes count samples of width bytes in 8K-sample chunks.
func writeChunked(w io.Writer, count, width int, put func(dst []byte, i int)) error {
	const chunkSize = 8192
	if count == 0 {
		return nil
	}

	buf := make([]byte, min(count, chunkSize)*width)

	for start := 0; start < count; start += chunkSize {
		end := min(start+chunkSize, count)
		out := buf[:(end-start)*width]

		for i := start; i < end; i++ {
			put(out[(i-start)*width:], i)
		}

		if _, err := w.Write(out); err != nil {
			return fmt.Errorf("writing WAV data: %w", err)
		}
	}

	return nil
}
