package replay

// FrameInput records input state for a single frame
type FrameInput struct {
	F  int     `json:"f"`            // Frame number
	Fw float64 `json:"fw,omitempty"` // Forward axis
	Rt float64 `json:"rt,omitempty"` // Right axis
	Tn float64 `json:"tn,omitempty"` // Turn axis
	Lk float64 `json:"lk,omitempty"` // Look axis
	J  bool    `json:"j,omitempty"`  // Jump
	JP bool    `json:"jp,omitempty"` // JumpPressed
	JR bool    `json:"jr,omitempty"` // JumpReleased
}

// ReplayData contains all data needed to replay a session
type ReplayData struct {
	Version   string       `json:"version"`
	Stage     string       `json:"stage"`
	StartTime string       `json:"startTime"`
	DT        float64      `json:"dt"` // Fixed frame step in seconds
	Frames    []FrameInput `json:"frames"`
}
