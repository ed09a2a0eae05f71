package midi

import (
	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"
	gomidi "gitlab.com/gomidi/midi/v2"

	"go-pianoroll/debug"
)

// Input listens to a MIDI keyboard and forwards its notes
type Input struct {
	name     string
	stopFunc func()
	noteChan chan Event
}

// OpenInput starts listening on the first input port whose name contains
// name (case-insensitive; empty picks the first port)
func OpenInput(name string) (*Input, error) {
	ports, err := inPorts()
	if err != nil {
		return nil, err
	}
	port, ok := matchPort(ports, name)
	if !ok {
		return nil, fault.New("midi input not found",
			ftag.With(ftag.NotFound),
			fmsg.WithDesc("no input port matches "+name, "No MIDI input matching \""+name+"\""))
	}

	in := &Input{
		name:     port.String(),
		noteChan: make(chan Event, 32),
	}
	stop, err := gomidi.ListenTo(port, func(msg gomidi.Message, timestampms int32) {
		if ev, ok := decode(msg); ok {
			select {
			case in.noteChan <- ev:
			default:
			}
		}
	})
	if err != nil {
		return nil, fault.Wrap(err, fmsg.With("open midi input "+port.String()))
	}
	in.stopFunc = stop
	debug.Log("midi", "listening on %q", in.name)
	return in, nil
}

// decode keeps note starts and ends; a note-on with velocity 0 is an end
func decode(msg gomidi.Message) (Event, bool) {
	var channel, note, velocity uint8
	switch {
	case msg.GetNoteStart(&channel, &note, &velocity):
		return Event{Type: NoteOn, Channel: channel, Note: note, Velocity: velocity}, true
	case msg.GetNoteEnd(&channel, &note):
		return Event{Type: NoteOff, Channel: channel, Note: note}, true
	}
	return Event{}, false
}

func (in *Input) Name() string {
	return in.name
}

func (in *Input) Notes() <-chan Event {
	return in.noteChan
}

func (in *Input) Close() error {
	if in.stopFunc != nil {
		in.stopFunc()
	}
	close(in.noteChan)
	return nil
}
