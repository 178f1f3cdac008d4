// SPDX-License-Identifier: EPL-2.0

// Package control simulates the control inputs of a sampler module: gate
// jacks with edge detection, pitch control voltages and their 1 V/octave
// calibration, plus scripts that play timed gate and note events into them.
//
// A Gate satisfies voice.Gate and a CV satisfies voice.PitchInput, so a
// Script can stand in for hardware when rendering offline.
package control
