// SPDX-License-Identifier: EPL-2.0

// Package voice implements the playback side of the sampler: per-tick state
// machines reading sample data that was loaded into an arena beforehand.
//
// PitchVoice follows a pitch input, transposing the zone picked at trigger
// time relative to its pitch_keycenter, and shapes it with an Envelope.
// TriggerVoice plays a buffer once per trigger edge at its recorded speed.
//
// Process never allocates, blocks or logs, so it is safe to call from an
// audio callback. An unset or unloaded buffer simply produces silence.
package voice
