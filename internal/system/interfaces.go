package system

import (
	"net"
	"os"
	"sort"
)

// InterfaceKind is the coarse classification used for ordering.
type InterfaceKind int

const (
	KindPhysical InterfaceKind = iota
	KindVirtual
	KindLoopback
)

func (k InterfaceKind) String() string {
	switch k {
	case KindPhysical:
		return "physical"
	case KindVirtual:
		return "virtual"
	default:
		return "loopback"
	}
}

// Interface is one network interface with its link state.
type Interface struct {
	Name string
	Up   bool
	Kind InterfaceKind
}

// netInterfaces is overridable for testing.
var netInterfaces = net.Interfaces

// Interfaces lists network interfaces sorted physical first, then virtual,
// then loopback, alphabetical within a kind.
func (e *Enumerator) Interfaces() ([]Interface, error) {
	return e.interfaces.GetOrCompute("interfaces", func() ([]Interface, error) {
		raw, err := netInterfaces()
		if err != nil {
			return nil, err
		}

		out := make([]Interface, 0, len(raw))
		for _, ifc := range raw {
			out = append(out, Interface{
				Name: ifc.Name,
				Up:   ifc.Flags&net.FlagUp != 0,
				Kind: classifyInterface(ifc),
			})
		}
		sort.Slice(out, func(i, j int) bool {
			if out[i].Kind != out[j].Kind {
				return out[i].Kind < out[j].Kind
			}
			return out[i].Name < out[j].Name
		})
		return out, nil
	})
}

func classifyInterface(ifc net.Interface) InterfaceKind {
	if ifc.Flags&net.FlagLoopback != 0 {
		return KindLoopback
	}
	// A physical interface has a device node under sysfs.
	if _, err := os.Stat("/sys/class/net/" + ifc.Name + "/device"); err == nil {
		return KindPhysical
	}
	return KindVirtual
}
