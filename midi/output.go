package midi

import (
	"strings"
	"sync"
	"time"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver

	"go-pianoroll/debug"
)

// portTimeout bounds port enumeration; CoreMIDI can hang
const portTimeout = 3 * time.Second

// Sender is anything that accepts channel messages
type Sender interface {
	Send(Event) error
}

// Output is an open MIDI output port
type Output struct {
	name string
	mu   sync.Mutex
	send func(gomidi.Message) error
}

// OpenOutput opens the first output port whose name contains name
// (case-insensitive). An empty name picks the first port.
func OpenOutput(name string) (*Output, error) {
	ports, err := outPorts()
	if err != nil {
		return nil, err
	}
	port, ok := matchPort(ports, name)
	if !ok {
		return nil, fault.New("midi output not found",
			ftag.With(ftag.NotFound),
			fmsg.WithDesc("no output port matches "+name, "No MIDI output matching \""+name+"\""))
	}

	send, err := gomidi.SendTo(port)
	if err != nil {
		return nil, fault.Wrap(err, fmsg.With("open midi output "+port.String()))
	}
	debug.Log("midi", "opened output %q", port.String())
	return &Output{name: port.String(), send: send}, nil
}

func (o *Output) Name() string {
	return o.name
}

// Send writes one event. Safe for concurrent use.
func (o *Output) Send(e Event) error {
	var msg gomidi.Message
	switch e.Type {
	case NoteOn:
		msg = gomidi.NoteOn(e.Channel, e.Note, e.Velocity)
	case NoteOff:
		msg = gomidi.NoteOff(e.Channel, e.Note)
	default:
		return nil
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	return o.send(msg)
}

func matchPort[P interface{ String() string }](ports []P, name string) (P, bool) {
	var zero P
	if len(ports) == 0 {
		return zero, false
	}
	if name == "" {
		return ports[0], true
	}
	want := strings.ToLower(name)
	for _, p := range ports {
		if strings.Contains(strings.ToLower(p.String()), want) {
			return p, true
		}
	}
	return zero, false
}

func outPorts() ([]drivers.Out, error) {
	ch := make(chan []drivers.Out, 1)
	go func() { ch <- gomidi.GetOutPorts() }()

	select {
	case ports := <-ch:
		return ports, nil
	case <-time.After(portTimeout):
		return nil, fault.New("midi port scan timed out",
			fmsg.WithDesc("GetOutPorts timeout", "MIDI system not responding"))
	}
}

func inPorts() ([]drivers.In, error) {
	ch := make(chan []drivers.In, 1)
	go func() { ch <- gomidi.GetInPorts() }()

	select {
	case ports := <-ch:
		return ports, nil
	case <-time.After(portTimeout):
		return nil, fault.New("midi port scan timed out",
			fmsg.WithDesc("GetInPorts timeout", "MIDI system not responding"))
	}
}

// Ports lists the names of the available input and output ports
func Ports() (ins, outs []string, err error) {
	in, err := inPorts()
	if err != nil {
		return nil, nil, err
	}
	out, err := outPorts()
	if err != nil {
		return nil, nil, err
	}
	for _, p := range in {
		ins = append(ins, p.String())
	}
	for _, p := range out {
		outs = append(outs, p.String())
	}
	return ins, outs, nil
}

// OutPortNames lists output port names, or nil when the scan hangs
func OutPortNames() []string {
	ports, err := outPorts()
	if err != nil {
		return nil
	}
	names := make([]string, len(ports))
	for i, p := range ports {
		names[i] = p.String()
	}
	return names
}

// CloseDriver releases the MIDI driver; call once on exit
func CloseDriver() {
	gomidi.CloseDriver()
}
