package gui

// Action is a user request from the GUI to the emulation.
type Action int

// List of valid Action values.
const (
	Nothing Action = iota

	// switch between muted and unmuted audio
	ToggleAudio

	// load a cartridge. the Data field of the Input is a ROM value
	LoadROM

	// reload the most recent cartridge
	Reset
)

func (a Action) String() string {
	switch a {
	case ToggleAudio:
		return "toggle audio"
	case LoadROM:
		return "load rom"
	case Reset:
		return "reset"
	}
	return "nothing"
}

// Input is sent on the UserInput channel of the GUI type.
type Input struct {
	Action Action
	Data   any
}

// ROM is the Data of a LoadROM Input.
type ROM struct {
	Filename string

	// the contents of the file. nil if the file has not been read
	Data []uint8
}
