// SPDX-License-Identifier: EPL-2.0

package sfz

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/ik5/romple/audio"
)

// MaxLineLength is the longest line the parser accepts, in bytes.
const MaxLineLength = 512

// state tells the parser which record an opcode edits.
type state int

const (
	// noContext: no header seen yet; opcodes edit the group template.
	noContext state = iota
	// inGroup: after <group>; opcodes edit the group template.
	inGroup
	// inRegion: after <region>; opcodes edit the last region.
	inRegion
)

type parser struct {
	state    state
	template Region
	out      RegionMap
	// declared holds the header line of each region, for validation errors.
	declared []int
}

// Parse reads a region map. On error the partial map is discarded.
func Parse(r io.Reader) (*RegionMap, error) {
	p := &parser{template: DefaultRegion()}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, MaxLineLength), MaxLineLength)

	line := 0
	for sc.Scan() {
		line++
		if err := p.line(sc.Text(), line); err != nil {
			return nil, &ParseError{Line: line, Err: err}
		}
	}

	if err := sc.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, &ParseError{Line: line + 1, Err: ErrLineTooLong}
		}
		return nil, fmt.Errorf("%w: reading region map: %w", audio.ErrStorage, err)
	}

	if err := p.validate(); err != nil {
		return nil, err
	}

	return &p.out, nil
}

// ParseString parses a region map held in memory.
func ParseString(s string) (*RegionMap, error) {
	return Parse(strings.NewReader(s))
}

func (p *parser) line(s string, lineNo int) error {
	if i := strings.Index(s, "//"); i >= 0 {
		s = s[:i]
	}
	s = strings.TrimSpace(s)

	for pos := 0; pos < len(s); {
		c := s[pos]

		switch {
		case c == '<':
			end := strings.IndexByte(s[pos:], '>')
			if end < 0 {
				return ErrUnterminatedHeader
			}
			p.header(strings.TrimSpace(s[pos+1:pos+end]), lineNo)
			pos += end + 1

		case isLetter(c):
			eq := strings.IndexByte(s[pos:], '=')
			if eq < 0 {
				return ErrMissingValue
			}
			name := strings.TrimSpace(s[pos : pos+eq])
			pos += eq + 1

			end := strings.IndexFunc(s[pos:], unicode.IsSpace)
			if end < 0 {
				end = len(s) - pos
			}
			value := s[pos : pos+end]
			pos += end

			if err := p.opcode(name, value); err != nil {
				return fmt.Errorf("%s=%q: %w", name, value, err)
			}

		default:
			pos++
		}
	}

	return nil
}

func (p *parser) header(name string, lineNo int) {
	switch name {
	case "region":
		p.out.Regions = append(p.out.Regions, p.template)
		p.declared = append(p.declared, lineNo)
		p.state = inRegion
	case "group":
		p.template = DefaultRegion()
		p.state = inGroup
	}
}

// target is the record the next opcode applies to.
func (p *parser) target() *Region {
	if p.state == inRegion {
		return &p.out.Regions[len(p.out.Regions)-1]
	}

	return &p.template
}

func (p *parser) opcode(name, value string) error {
	r := p.target()

	switch name {
	case "sample":
		r.Sample = value
	case "offset":
		return parseIndex(value, &r.StartIndex)
	case "end":
		return parseIndex(value, &r.EndIndex)
	case "key":
		k, err := keyValue(value)
		if err != nil {
			return err
		}
		r.LowKey, r.HighKey, r.PitchKeyCenter = k, k, k
	case "lokey":
		return parseKeyInto(value, &r.LowKey)
	case "hikey":
		return parseKeyInto(value, &r.HighKey)
	case "pitch_keycenter":
		return parseKeyInto(value, &r.PitchKeyCenter)
	case "loop_mode":
		switch value {
		case "no_loop":
			r.Loop = NoLoop
		case "one_shot":
			r.Loop = OneShot
		case "loop_continuous":
			r.Loop = LoopContinuous
		case "loop_sustain":
			// sustain loops are played as continuous loops
			r.Loop = LoopContinuous
		default:
			return ErrInvalidValue
		}
	case "ampeg_start":
		return parsePercent(value, &r.Envelope.Start)
	case "ampeg_delay":
		return parseSeconds(value, &r.Envelope.Delay)
	case "ampeg_attack":
		return parseSeconds(value, &r.Envelope.Attack)
	case "ampeg_hold":
		return parseSeconds(value, &r.Envelope.Hold)
	case "ampeg_decay":
		return parseSeconds(value, &r.Envelope.Decay)
	case "ampeg_sustain":
		return parsePercent(value, &r.Envelope.Sustain)
	case "ampeg_release":
		return parseSeconds(value, &r.Envelope.Release)
	}

	return nil
}

func (p *parser) validate() error {
	for i, r := range p.out.Regions {
		var err error

		switch {
		case r.LowKey > r.HighKey:
			err = fmt.Errorf("%w: lokey %d above hikey %d", ErrInvalidValue, r.LowKey, r.HighKey)
		case r.EndIndex != 0 && r.StartIndex > r.EndIndex:
			err = fmt.Errorf("%w: offset %d past end %d", ErrInvalidValue, r.StartIndex, r.EndIndex)
		}

		if err != nil {
			return &ParseError{Line: p.declared[i], Err: err}
		}
	}

	return nil
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func keyValue(s string) (int, error) {
	k, err := parseKey(s)
	if err != nil {
		return 0, err
	}
	if k < 0 || k > 127 {
		return 0, ErrInvalidValue
	}

	return k, nil
}

func parseKeyInto(s string, dst *int) error {
	k, err := keyValue(s)
	if err != nil {
		return err
	}
	*dst = k

	return nil
}

func parseIndex(s string, dst *int) error {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil || v < 0 {
		return ErrInvalidValue
	}
	*dst = int(v)

	return nil
}

func parseSeconds(s string, dst *float32) error {
	v, err := strconv.ParseFloat(s, 32)
	if err != nil || v < 0 {
		return ErrInvalidValue
	}
	*dst = float32(v)

	return nil
}

func parsePercent(s string, dst *float32) error {
	v, err := strconv.ParseFloat(s, 32)
	if err != nil || v < 0 || v > 100 {
		return ErrInvalidValue
	}
	*dst = float32(v / 100)

	return nil
}
