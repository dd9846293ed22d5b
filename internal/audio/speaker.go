package audio

import (
	"fmt"
	"time"

	"github.com/gopxl/beep/speaker"
)

const speakerBufferSize = 50 * time.Millisecond

// SpeakerOutput plays a Synth through beep's speaker, for frontends that
// have no ebiten context.
type SpeakerOutput struct {
	synth *Synth
}

// OpenSpeaker initializes the speaker at the synth's rate and starts
// streaming. Only one speaker may be open per process.
func OpenSpeaker(s *Synth) (*SpeakerOutput, error) {
	rate := s.rate
	if err := speaker.Init(rate, rate.N(speakerBufferSize)); err != nil {
		return nil, fmt.Errorf("speaker init: %w", err)
	}
	speaker.Play(s)
	return &SpeakerOutput{synth: s}, nil
}

func (o *SpeakerOutput) Close() {
	speaker.Clear()
	speaker.Close()
}
