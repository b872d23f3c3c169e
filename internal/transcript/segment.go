package transcript

import "strings"

// segState tracks where the segmenter is inside a transcript.
type segState int

const (
	// stateSkippingPreamble runs from the top of the capture until the
	// first user prompt; everything before that prompt is banner noise.
	stateSkippingPreamble segState = iota
	stateIdle
	stateInUserTurn
	stateInAssistantTurn
)

// segmenter is a line-at-a-time state machine. Lines accumulate into the
// current turn until a boundary line (prompt, assistant marker, or system
// command) flushes them.
type segmenter struct {
	rules   Rules
	state   segState
	speaker Speaker
	lines   []string
	turns   []Turn
}

func newSegmenter(rules Rules) *segmenter {
	return &segmenter{rules: rules, state: stateSkippingPreamble}
}

func (s *segmenter) parse(content string) []Turn {
	content = StripLineNumbers(content)
	for _, raw := range strings.Split(content, "\n") {
		s.feed(raw)
	}
	s.flush()
	return s.turns
}

// feed routes one raw line. Checks are ordered: the assistant marker is
// detected on the raw line before cleaning removes the glyph, preamble
// handling wins over everything else, and noise lines are dropped before
// any turn bookkeeping happens.
func (s *segmenter) feed(raw string) {
	marker := s.rules.HasAssistantMarker(raw)
	line := Clean(raw)

	if s.state == stateSkippingPreamble {
		if s.rules.IsPreamble(line) || strings.TrimSpace(line) == "" {
			return
		}
		if !s.rules.IsUserPromptStart(line) {
			// Unrecognized output before the first prompt is
			// still banner territory.
			return
		}
		s.state = stateIdle
	}

	if s.rules.IsTiming(line) || s.rules.IsSystemResponse(line) {
		return
	}

	if s.rules.IsUserPromptStart(line) {
		text := s.rules.PromptText(line)
		if s.rules.IsSystemCommand(text) {
			// The command and whatever the CLI prints back are
			// bookkeeping; close out the current turn and wait.
			s.flush()
			s.state = stateIdle
			return
		}
		s.flush()
		s.speaker = SpeakerUser
		s.state = stateInUserTurn
		if text != "" {
			s.lines = append(s.lines, text)
		}
		return
	}

	switch {
	case marker && s.state != stateInAssistantTurn:
		s.flush()
		s.speaker = SpeakerAssistant
		s.state = stateInAssistantTurn
		if strings.TrimSpace(line) != "" {
			s.lines = append(s.lines, line)
		}
	case marker:
		// Another marker inside an assistant turn continues it.
		s.lines = append(s.lines, line)
	case s.state == stateInUserTurn || s.state == stateInAssistantTurn:
		s.lines = append(s.lines, line)
	case strings.TrimSpace(line) != "":
		// Output with no marker while idle: the assistant is
		// talking without its glyph (tool output, continuations).
		s.flush()
		s.speaker = SpeakerAssistant
		s.state = stateInAssistantTurn
		s.lines = append(s.lines, line)
	}
}

// flush closes the current turn. Turns that accumulated no lines vanish, so
// an empty prompt or a bare marker never yields a turn.
func (s *segmenter) flush() {
	if len(s.lines) == 0 {
		return
	}
	s.turns = append(s.turns, Turn{
		Speaker: s.speaker,
		Content: strings.Join(s.lines, "\n"),
	})
	s.lines = nil
}
