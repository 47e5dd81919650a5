// Package wellknown carries the built-in registry of sensitive
// administrative and database ports. It supplies the default sensitive-port
// set for the permissiveness detector and service names for report text;
// audits may override the set through configuration.
package wellknown

import (
	"bytes"
	"encoding/csv"
	"io"
	"log"
	"strconv"
	"strings"

	_ "embed"
)

//go:embed sensitive_ports.csv
var sensitivePortsData string

type PortEntry struct {
	Port     int
	Service  string
	Category string
}

var (
	registry     map[int]PortEntry
	defaultPorts []int
)

func init() {
	registry = make(map[int]PortEntry)
	reader := csv.NewReader(bytes.NewBufferString(sensitivePortsData))
	reader.TrimLeadingSpace = true
	// Skip header
	if _, err := reader.Read(); err != nil {
		log.Fatalf("Failed to read header from embedded sensitive_ports.csv: %v", err)
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Fatalf("Failed to parse embedded sensitive_ports.csv: %v", err)
		}
		if len(record) < 3 {
			continue
		}

		port, err := strconv.Atoi(record[0])
		if err != nil {
			continue // Skip if port is not a valid number
		}

		registry[port] = PortEntry{
			Port:     port,
			Service:  strings.TrimSpace(record[1]),
			Category: strings.TrimSpace(record[2]),
		}
		defaultPorts = append(defaultPorts, port)
	}
}

// SensitivePorts returns a copy of the built-in sensitive port set.
func SensitivePorts() []int {
	out := make([]int, len(defaultPorts))
	copy(out, defaultPorts)
	return out
}

// Lookup returns the registry entry for a port.
func Lookup(port int) (PortEntry, bool) {
	entry, ok := registry[port]
	return entry, ok
}

// ServiceName returns the service name for a port, or the empty string for
// ports outside the registry.
func ServiceName(port int) string {
	if entry, ok := registry[port]; ok {
		return entry.Service
	}
	return ""
}
