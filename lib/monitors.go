package changewallpaperlib

import (
	"fmt"
	"strconv"

	"github.com/awused/composite-wallpapers/composite"
)

type Monitor struct {
	Width   int
	Height  int
	Left    int
	Top     int
	aspectX string
	aspectY string
	// Platform specific, nil or zero for monitors from the config
	handle monitorHandle
}

func (m *Monitor) Descriptor() composite.Monitor {
	return composite.NewMonitor(m.Left, m.Top, m.Width, m.Height)
}

func (m *Monitor) String() string {
	return m.Descriptor().String()
}

// Aspect is the reduced aspect ratio used to key .properties.toml
func (m *Monitor) Aspect() string {
	return m.aspectX + ":" + m.aspectY
}

func Descriptors(monitors []*Monitor) []composite.Monitor {
	out := make([]composite.Monitor, len(monitors))
	for i, m := range monitors {
		out[i] = m.Descriptor()
	}
	return out
}

func aspectRatio(m *Monitor) (string, string) {
	a, b := m.Width, m.Height

	for b != 0 {
		a, b = b, a%b
	}

	if a == 0 {
		return "0", "0"
	}

	return strconv.Itoa(m.Width / a), strconv.Itoa(m.Height / a)
}

// GetMonitors returns the monitors listed in the config, or every active
// monitor the OS reports.
func GetMonitors() ([]*Monitor, error) {
	c, err := GetConfig()
	if err != nil {
		return nil, err
	}

	var monitors []*Monitor
	if len(c.Monitors) > 0 {
		for _, sm := range c.Monitors {
			monitors = append(monitors, &Monitor{
				Width:  sm.Width,
				Height: sm.Height,
				Left:   sm.Left,
				Top:    sm.Top,
			})
		}
	} else {
		monitors, err = getSystemMonitors()
		if err != nil {
			return nil, err
		}
	}

	if len(monitors) == 0 {
		return nil, fmt.Errorf("%w: no monitors detected", composite.ErrInvalidTopology)
	}

	// Prime the aspect ratio caches so they're effectively read only afterwards
	for i, m := range monitors {
		m.aspectX, m.aspectY = aspectRatio(m)
		logger.Debug().
			Int("monitor", i).
			Stringer("geometry", m).
			Str("aspect", m.aspectX+":"+m.aspectY).
			Msg("Detected monitor")
	}

	return monitors, nil
}
