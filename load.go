// SPDX-License-Identifier: EPL-2.0

package romple

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ik5/romple/arena"
	"github.com/ik5/romple/audio"
	"github.com/ik5/romple/sfz"
	"github.com/ik5/romple/voice"
)

// maxEmptyReads bounds how often a source may return neither data nor an
// error before the load is abandoned.
const maxEmptyReads = 64

// LoadSample decodes the file at path into the arena.
//
// Errors match audio.ErrStorage when the file cannot be opened or read,
// audio.ErrFormat when its content is not supported, and audio.ErrCapacity
// when the samples do not fit in the space left. On any error the arena is
// rewound to where it was before the call and the zero Buffer is returned.
func (e *Engine) LoadSample(path string) (arena.Buffer, error) {
	mark := e.arena.Len()

	buf, err := e.loadSample(path)
	if err != nil {
		e.arena.Rewind(mark)
		e.log.Warn("sample load failed", "path", path, "error", err)
		e.observeLoad(KindSample, err)

		return arena.Buffer{}, err
	}

	e.log.Debug("sample loaded",
		"path", path,
		"offset", buf.Offset,
		"samples", buf.Length,
		"channels", buf.Channels,
		"sample_rate", buf.SampleRate)
	e.observeLoad(KindSample, nil)

	return buf, nil
}

func (e *Engine) loadSample(path string) (arena.Buffer, error) {
	dec, ok := e.registry.ForPath(path)
	if !ok {
		return arena.Buffer{}, fmt.Errorf("%w: %w: %q", audio.ErrFormat, audio.ErrUnknownFormat, filepath.Ext(path))
	}

	f, err := e.fs.Open(path)
	if err != nil {
		return arena.Buffer{}, fmt.Errorf("%w: opening %s: %w", audio.ErrStorage, path, err)
	}
	defer f.Close()

	src, err := dec.Decode(f)
	if err != nil {
		if !errors.Is(err, audio.ErrStorage) && !errors.Is(err, audio.ErrFormat) {
			err = fmt.Errorf("%w: %w", audio.ErrFormat, err)
		}
		return arena.Buffer{}, fmt.Errorf("decoding %s: %w", path, err)
	}
	defer src.Close()

	if e.downmix && src.Channels() > 1 {
		src = audio.NewDownmixer(src)
	}

	buf, err := e.stream(src)
	if err != nil {
		return arena.Buffer{}, fmt.Errorf("loading %s: %w", path, err)
	}

	return buf, nil
}

// stream copies src into the arena one workspace block at a time. It keeps
// going while the source has data and the arena has room; data left over
// once the arena is full is a capacity error.
func (e *Engine) stream(src audio.Source) (arena.Buffer, error) {
	channels := max(src.Channels(), 1)
	if channels > len(e.workspace) {
		return arena.Buffer{}, fmt.Errorf("%w: %d channels exceed the %d-sample workspace", audio.ErrFormat, channels, len(e.workspace))
	}
	block := e.workspace[:len(e.workspace)-len(e.workspace)%channels]

	start := e.arena.Len()
	total := 0
	empty := 0

	for {
		n, err := src.ReadSamples(block)
		if n > 0 {
			empty = 0

			offset, granted := e.arena.Allocate(n * arena.SampleSize)
			got := granted / arena.SampleSize
			if got > 0 {
				dst := e.arena.Samples(arena.Buffer{Offset: offset, Length: got})
				copy(dst, block[:got])
				total += got
			}

			if got < n {
				return arena.Buffer{}, fmt.Errorf("%w: %d samples loaded, arena full", audio.ErrCapacity, total)
			}
		}

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if !errors.Is(err, audio.ErrStorage) {
				err = fmt.Errorf("%w: %w", audio.ErrStorage, err)
			}
			return arena.Buffer{}, err
		}

		if n == 0 {
			empty++
			if empty >= maxEmptyReads {
				return arena.Buffer{}, fmt.Errorf("%w: %w", audio.ErrStorage, io.ErrNoProgress)
			}
		}
	}

	if total == 0 {
		return arena.Buffer{}, fmt.Errorf("%w: no sample data", audio.ErrFormat)
	}

	return e.arena.Bind(arena.Buffer{
		Offset:     start,
		Length:     total,
		Channels:   channels,
		SampleRate: src.SampleRate(),
	}), nil
}

// LoadRegionMap reads and parses an SFZ region map. Parse errors match
// audio.ErrFormat and carry the offending line in a *sfz.ParseError.
func (e *Engine) LoadRegionMap(path string) (*sfz.RegionMap, error) {
	m, err := e.loadRegionMap(path)
	if err != nil {
		e.log.Warn("region map load failed", "path", path, "error", err)
		e.observeLoad(KindRegionMap, err)

		return nil, err
	}

	e.log.Debug("region map loaded", "path", path, "regions", m.Len())
	e.observeLoad(KindRegionMap, nil)

	return m, nil
}

func (e *Engine) loadRegionMap(path string) (*sfz.RegionMap, error) {
	f, err := e.fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %w", audio.ErrStorage, path, err)
	}
	defer f.Close()

	m, err := sfz.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	return m, nil
}

// LoadInstrument parses the region map at path and loads every sample it
// references, resolved against the map's directory. Each file is loaded
// once even when several regions share it. If any sample fails, all
// samples loaded by this call are released again.
func (e *Engine) LoadInstrument(path string) (voice.Instrument, error) {
	inst, err := e.loadInstrument(path)
	if err != nil {
		e.log.Warn("instrument load failed", "path", path, "error", err)
		e.observeLoad(KindInstrument, err)

		return voice.Instrument{}, err
	}

	e.log.Info("instrument loaded", "path", path, "zones", len(inst.Zones))
	e.observeLoad(KindInstrument, nil)

	return inst, nil
}

func (e *Engine) loadInstrument(mapPath string) (voice.Instrument, error) {
	m, err := e.LoadRegionMap(mapPath)
	if err != nil {
		return voice.Instrument{}, err
	}

	mark := e.arena.Len()
	dir := filepath.Dir(mapPath)
	buffers := make(map[string]arena.Buffer, len(m.Regions))

	for _, name := range m.Samples() {
		buf, err := e.LoadSample(samplePath(dir, name))
		if err != nil {
			e.arena.Rewind(mark)
			return voice.Instrument{}, fmt.Errorf("region sample %q: %w", name, err)
		}
		buffers[name] = buf
	}

	zones := make([]voice.Zone, 0, len(m.Regions))
	for _, r := range m.Regions {
		if r.Sample == "" {
			e.log.Warn("region without sample skipped", "path", mapPath, "lokey", r.LowKey, "hikey", r.HighKey)
			continue
		}
		zones = append(zones, voice.Zone{Region: r, Buffer: buffers[r.Sample]})
	}

	if len(zones) == 0 {
		return voice.Instrument{}, fmt.Errorf("%w: %s defines no playable regions", audio.ErrFormat, mapPath)
	}

	return voice.Instrument{Zones: zones}, nil
}

// samplePath resolves a sample name from a region map. Region maps are often
// written on Windows, so backslashes are read as separators.
func samplePath(dir, name string) string {
	name = filepath.FromSlash(strings.ReplaceAll(name, `\`, "/"))
	if filepath.IsAbs(name) {
		return filepath.Clean(name)
	}

	return filepath.Join(dir, name)
}
