// SPDX-License-Identifier: EPL-2.0

// Package romple is the sample memory and playback engine of a sampler
// module.
//
// An Engine owns one preallocated arena. During a load phase, sample files
// are decoded block by block into that arena and, optionally, mapped to key
// ranges by an SFZ region map. Once loading is done, the host calls Process
// from its audio callback and every voice in the engine's fixed voice bank
// produces one sample per tick.
//
// # Loading
//
//	eng := romple.New(
//		romple.WithArenaSize(16<<20),
//		romple.WithFs(afero.NewOsFs()),
//		romple.WithSampleRate(48000),
//	)
//
//	kick, err := eng.LoadSample("kits/kick.wav")
//	if err != nil {
//		// errors.Is(err, audio.ErrStorage), audio.ErrFormat or audio.ErrCapacity
//	}
//
//	keys, err := eng.LoadInstrument("kits/piano.sfz")
//
// Supported containers are WAV (16-bit PCM and 32-bit float), AIFF, MP3 and
// Ogg Vorbis. A failed load leaves the arena as it was before the call.
//
// # Playback
//
//	eng.SetVoice(0, voice.NewTriggerVoice(kick, &gate1))
//	eng.SetVoice(1, voice.NewPitchVoice(keys, &gate2, &cv, voice.WithSampleRate(48000)))
//
//	out := [][]float32{make([]float32, 64), make([]float32, 64)}
//	eng.Process(out)
//
// Process never allocates, blocks or logs.
//
// # Resetting
//
// ResetArena releases all sample memory at once. Every voice in the bank is
// unloaded at the same time, so none can read stale data; reload before
// playing again.
package romple
