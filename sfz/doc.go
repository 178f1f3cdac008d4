// SPDX-License-Identifier: EPL-2.0

// Package sfz parses the subset of the SFZ region-definition format used to
// map samples onto key ranges.
//
// The file is read line by line. A "//" starts a comment. Headers are written
// in angle brackets and opcodes as name=value pairs, several per line if
// needed:
//
//	<group> lokey=36 hikey=47 ampeg_release=0.2
//	<region> sample=kick.wav pitch_keycenter=36
//	<region> sample=kick_soft.wav offset=128 end=9000
//
// <region> appends a copy of the current group template. <group> resets the
// template to defaults. Opcodes before any header, or after a <group>, edit
// the template; after a <region> they edit that region. Unknown headers and
// opcodes are skipped.
//
// # Opcodes
//
//	sample            file name, relative to the map
//	offset, end       first and last sample index (end=0 means file end)
//	key               sets lokey, hikey and pitch_keycenter at once
//	lokey, hikey      inclusive key range, integers or names like c4, f#3
//	pitch_keycenter   key at which the sample plays unshifted
//	loop_mode         no_loop, one_shot, loop_continuous
//	ampeg_*           start, delay, attack, hold, decay, sustain, release
//
// A malformed header or opcode stops parsing with a *ParseError, which
// matches audio.ErrFormat.
package sfz
