package replay

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// FormatVersion is written into new recordings
const FormatVersion = "2.0"

// ReplayInput represents input state during replay
type ReplayInput struct {
	Forward      float64
	Right        float64
	Turn         float64
	Look         float64
	Jump         bool
	JumpPressed  bool
	JumpReleased bool
}

// Replayer handles input playback from recorded data
type Replayer struct {
	data  ReplayData
	frame int
}

// NewReplayer creates a new replayer from replay data
func NewReplayer(data ReplayData) *Replayer {
	return &Replayer{
		data:  data,
		frame: 0,
	}
}

// LoadReplay loads replay data from a file
func LoadReplay(filename string) (*ReplayData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var data ReplayData
	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode replay: %w", err)
	}

	return &data, nil
}

// GetInput returns the input for the current frame and advances
func (r *Replayer) GetInput() (ReplayInput, bool) {
	if r.frame >= len(r.data.Frames) {
		return ReplayInput{}, false
	}

	fi := r.data.Frames[r.frame]
	r.frame++

	return ReplayInput{
		Forward:      fi.Fw,
		Right:        fi.Rt,
		Turn:         fi.Tn,
		Look:         fi.Lk,
		Jump:         fi.J,
		JumpPressed:  fi.JP,
		JumpReleased: fi.JR,
	}, true
}

// CurrentFrame returns the current frame number
func (r *Replayer) CurrentFrame() int {
	return r.frame
}

// TotalFrames returns the total number of frames
func (r *Replayer) TotalFrames() int {
	return len(r.data.Frames)
}

// Stage returns the stage the replay was recorded on
func (r *Replayer) Stage() string {
	return r.data.Stage
}

// DT returns the recorded frame step, or fallback when none was recorded
func (r *Replayer) DT(fallback float64) float64 {
	if r.data.DT > 0 {
		return r.data.DT
	}
	return fallback
}

// Reset resets the replayer to the beginning
func (r *Replayer) Reset() {
	r.frame = 0
}

// CreateTestReplayData creates replay data for testing: the given number of
// frames holding forward, then a jump press on the last frame
func CreateTestReplayData(frames int, forward float64) ReplayData {
	data := ReplayData{
		Version:   FormatVersion,
		Stage:     "test",
		StartTime: time.Now().Format(time.RFC3339),
		DT:        1.0 / 60.0,
		Frames:    make([]FrameInput, frames),
	}

	for i := 0; i < frames; i++ {
		data.Frames[i] = FrameInput{
			F:  i,
			Fw: forward,
		}
	}
	if frames > 0 {
		data.Frames[frames-1].J = true
		data.Frames[frames-1].JP = true
	}

	return data
}
