package model

import (
	"net"
	"strconv"
)

type Protocol string // "tcp", "udp", "icmp", "any"

const (
	TCP         Protocol = "tcp"
	UDP         Protocol = "udp"
	ICMP        Protocol = "icmp"
	AnyProtocol Protocol = "any"
)

type Action string // "allow", "deny"

const (
	Allow Action = "allow"
	Deny  Action = "deny"
)

// MaxPort is the highest valid port number.
const MaxPort = 65535

// AddressSpec is a source or destination match criterion: the wildcard, a
// single host, or a CIDR block. Hosts are stored as /32 (IPv4) or /128
// (IPv6) networks so containment uses one code path.
type AddressSpec struct {
	Any   bool
	IPNet *net.IPNet // nil when Any
}

func (a AddressSpec) String() string {
	if a.Any {
		return "*"
	}
	if a.IPNet == nil {
		return "<invalid>"
	}
	if ones, bits := a.IPNet.Mask.Size(); ones == bits {
		return a.IPNet.IP.String()
	}
	return a.IPNet.String()
}

// PortSpec is a port match criterion: the wildcard, a single port
// (Low == High), or an inclusive range.
type PortSpec struct {
	Any  bool
	Low  int
	High int
}

func (p PortSpec) String() string {
	if p.Any {
		return "*"
	}
	if p.Low == p.High {
		return strconv.Itoa(p.Low)
	}
	return strconv.Itoa(p.Low) + "-" + strconv.Itoa(p.High)
}

// Rule is one normalized firewall rule. Instances are built once by a rule
// provider and treated as read-only for the duration of an analysis run.
type Rule struct {
	ID          string
	Name        string
	Source      AddressSpec
	Destination AddressSpec
	Port        PortSpec
	Protocol    Protocol
	Action      Action
	Priority    int // lower value = evaluated earlier
	HitCount    int
}

// Validate checks the construction-time invariants. Rule providers run it
// before handing rules over; the engine runs it again and fails the whole
// analysis if an invalid rule slipped through.
func (r *Rule) Validate() error {
	if r.ID == "" {
		return &ValidationError{RuleID: r.ID, Field: "id", Reason: "empty rule id"}
	}
	switch r.Protocol {
	case TCP, UDP, ICMP, AnyProtocol:
	default:
		return &ValidationError{RuleID: r.ID, Field: "protocol", Reason: "unknown protocol " + strconv.Quote(string(r.Protocol))}
	}
	switch r.Action {
	case Allow, Deny:
	default:
		return &ValidationError{RuleID: r.ID, Field: "action", Reason: "unknown action " + strconv.Quote(string(r.Action))}
	}
	if r.Priority < 0 {
		return &ValidationError{RuleID: r.ID, Field: "priority", Reason: "negative priority " + strconv.Itoa(r.Priority)}
	}
	if r.HitCount < 0 {
		return &ValidationError{RuleID: r.ID, Field: "hit_count", Reason: "negative hit count " + strconv.Itoa(r.HitCount)}
	}
	if !r.Source.Any && r.Source.IPNet == nil {
		return &ValidationError{RuleID: r.ID, Field: "source", Reason: "address specification has no network"}
	}
	if !r.Destination.Any && r.Destination.IPNet == nil {
		return &ValidationError{RuleID: r.ID, Field: "destination", Reason: "address specification has no network"}
	}
	if !r.Port.Any {
		if r.Port.Low < 0 || r.Port.High > MaxPort {
			return &ValidationError{RuleID: r.ID, Field: "port", Reason: "port out of range 0-" + strconv.Itoa(MaxPort)}
		}
		if r.Port.Low > r.Port.High {
			return &ValidationError{RuleID: r.ID, Field: "port", Reason: "inverted range " + strconv.Itoa(r.Port.Low) + "-" + strconv.Itoa(r.Port.High)}
		}
	}
	return nil
}
