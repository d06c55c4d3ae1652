package midi

import (
	"fmt"
	"strings"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"

	"go-phinrip/faults"
)

// DefaultScanTimeout bounds a port listing. Some MIDI services hang.
const DefaultScanTimeout = 3 * time.Second

var (
	ErrScanTimeout  = faults.New(faults.KindConfiguration, "timed out listing MIDI ports")
	ErrPortNotFound = faults.New(faults.KindConfiguration, "MIDI port not found")
)

// Ports lists the names of the available ports
type Ports struct {
	In  []string
	Out []string
}

type portsResult struct {
	in  []drivers.In
	out []drivers.Out
}

func scan(timeout time.Duration) (portsResult, error) {
	if timeout <= 0 {
		timeout = DefaultScanTimeout
	}
	ch := make(chan portsResult, 1)
	go func() {
		ch <- portsResult{in: gomidi.GetInPorts(), out: gomidi.GetOutPorts()}
	}()

	select {
	case r := <-ch:
		return r, nil
	case <-time.After(timeout):
		return portsResult{}, fmt.Errorf("%w after %s", ErrScanTimeout, timeout)
	}
}

// ListPorts returns the port names visible to the driver
func ListPorts(timeout time.Duration) (Ports, error) {
	r, err := scan(timeout)
	if err != nil {
		return Ports{}, err
	}
	var p Ports
	for _, in := range r.in {
		p.In = append(p.In, in.String())
	}
	for _, out := range r.out {
		p.Out = append(p.Out, out.String())
	}
	return p, nil
}

// matchPort returns the index of the port called want: an exact match
// first, then the first case-insensitive substring match
func matchPort(names []string, want string) (int, bool) {
	for i, n := range names {
		if n == want {
			return i, true
		}
	}
	lower := strings.ToLower(want)
	for i, n := range names {
		if strings.Contains(strings.ToLower(n), lower) {
			return i, true
		}
	}
	return -1, false
}

func findIn(ports []drivers.In, want string) (drivers.In, error) {
	names := make([]string, len(ports))
	for i, p := range ports {
		names[i] = p.String()
	}
	i, ok := matchPort(names, want)
	if !ok {
		return nil, fmt.Errorf("%w: input %q (have %s)", ErrPortNotFound, want, strings.Join(names, ", "))
	}
	return ports[i], nil
}

func findOut(ports []drivers.Out, want string) (drivers.Out, error) {
	names := make([]string, len(ports))
	for i, p := range ports {
		names[i] = p.String()
	}
	i, ok := matchPort(names, want)
	if !ok {
		return nil, fmt.Errorf("%w: output %q (have %s)", ErrPortNotFound, want, strings.Join(names, ", "))
	}
	return ports[i], nil
}
