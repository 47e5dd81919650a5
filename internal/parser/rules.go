// Package parser turns loosely typed rule records from CSV, JSON, or a
// MariaDB table into validated model.Rule values. All normalization and
// field validation happens here, before a rule ever reaches the engine;
// declaration (row/array) order is preserved because it breaks priority
// ties.
package parser

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"firewall-auditor/internal/model"
)

// record is one raw rule row: every value stringified, keys lowercased.
type record map[string]string

// ParseFile reads a rule set from a CSV or JSON file.
func ParseFile(path string) ([]model.Rule, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ParseCSV(f)
	case ".json":
		return ParseJSON(f)
	default:
		return nil, fmt.Errorf("unsupported rules file %s: use .csv or .json", path)
	}
}

// ParseCSV reads header-mapped rule rows.
func ParseCSV(r io.Reader) ([]model.Rule, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("could not read header: %w", err)
	}
	colMap := make(map[int]string, len(header))
	for i, colName := range header {
		colMap[i] = strings.ToLower(strings.TrimSpace(colName))
	}

	var records []record
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		rec := make(record, len(row))
		for i, value := range row {
			if name, ok := colMap[i]; ok {
				rec[name] = value
			}
		}
		records = append(records, rec)
	}
	return normalize(records)
}

// ParseJSON reads either a top-level array of rule objects or an object
// with a "rules" key. Field values may be strings, numbers, or booleans;
// they are stringified before normalization.
func ParseJSON(r io.Reader) ([]model.Rule, error) {
	var data any
	dec := json.NewDecoder(r)
	if err := dec.Decode(&data); err != nil {
		return nil, fmt.Errorf("could not decode rules JSON: %w", err)
	}

	var raw []any
	switch v := data.(type) {
	case []any:
		raw = v
	case map[string]any:
		nested, ok := v["rules"].([]any)
		if !ok {
			return nil, fmt.Errorf(`invalid rules JSON: expected an array or an object with a "rules" array`)
		}
		raw = nested
	default:
		return nil, fmt.Errorf(`invalid rules JSON: expected an array or an object with a "rules" array`)
	}

	var records []record
	for i, item := range raw {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("invalid rules JSON: entry %d is not an object", i+1)
		}
		rec := make(record, len(obj))
		for key, value := range obj {
			rec[strings.ToLower(key)] = stringify(value)
		}
		records = append(records, rec)
	}
	return normalize(records)
}

func stringify(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case bool:
		return strconv.FormatBool(value)
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case json.Number:
		return value.String()
	default:
		return fmt.Sprintf("%v", value)
	}
}

// normalize applies defaults, validates each record, and builds the typed
// rules. Records keep their input order.
func normalize(records []record) ([]model.Rule, error) {
	rules := make([]model.Rule, 0, len(records))
	for i, rec := range records {
		nr := applyDefaults(rec, i)
		if err := validateRecord(nr); err != nil {
			return nil, err
		}
		rule, err := buildRule(nr)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

// applyDefaults fills missing fields the way the audit format defines
// them: wildcard match criteria, allow action, any protocol, priority and
// id from the 1-based record index.
func applyDefaults(rec record, index int) normalizedRecord {
	nr := normalizedRecord{
		ID:          strings.TrimSpace(rec["id"]),
		Name:        strings.TrimSpace(rec["name"]),
		Source:      strings.TrimSpace(rec["source"]),
		Destination: strings.TrimSpace(rec["destination"]),
		Port:        strings.TrimSpace(rec["port"]),
		Protocol:    strings.ToLower(strings.TrimSpace(rec["protocol"])),
		Action:      strings.ToLower(strings.TrimSpace(rec["action"])),
	}
	if nr.ID == "" {
		nr.ID = strconv.Itoa(index + 1)
	}
	if nr.Name == "" {
		nr.Name = fmt.Sprintf("Rule %d", index+1)
	}
	if nr.Source == "" {
		nr.Source = "*"
	}
	if nr.Destination == "" {
		nr.Destination = "*"
	}
	if nr.Port == "" {
		nr.Port = "*"
	}
	if nr.Protocol == "" {
		nr.Protocol = string(model.AnyProtocol)
	}
	if nr.Action == "" {
		nr.Action = string(model.Allow)
	}

	nr.Priority = index + 1
	if raw := strings.TrimSpace(rec["priority"]); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			nr.Priority = v
		} else {
			nr.Priority = -1 // fails validation with the offending rule id
		}
	}
	if raw := strings.TrimSpace(rec["hit_count"]); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			nr.HitCount = v
		} else {
			nr.HitCount = -1
		}
	}
	return nr
}

func buildRule(nr normalizedRecord) (model.Rule, error) {
	src, err := parseAddressSpec(nr.Source)
	if err != nil {
		return model.Rule{}, &model.ValidationError{RuleID: nr.ID, Field: "source", Reason: err.Error()}
	}
	dst, err := parseAddressSpec(nr.Destination)
	if err != nil {
		return model.Rule{}, &model.ValidationError{RuleID: nr.ID, Field: "destination", Reason: err.Error()}
	}
	port, err := parsePortSpec(nr.Port)
	if err != nil {
		return model.Rule{}, &model.ValidationError{RuleID: nr.ID, Field: "port", Reason: err.Error()}
	}

	rule := model.Rule{
		ID:          nr.ID,
		Name:        nr.Name,
		Source:      src,
		Destination: dst,
		Port:        port,
		Protocol:    model.Protocol(nr.Protocol),
		Action:      model.Action(nr.Action),
		Priority:    nr.Priority,
		HitCount:    nr.HitCount,
	}
	if err := rule.Validate(); err != nil {
		return model.Rule{}, err
	}
	return rule, nil
}

// parseAddressSpec accepts "*"/"any", a single IP, or a CIDR block. Full
// address space networks (/0) fold into the wildcard so the matchers can
// treat non-wildcard specs as single-family.
func parseAddressSpec(s string) (model.AddressSpec, error) {
	if s == "*" || strings.EqualFold(s, "any") {
		return model.AddressSpec{Any: true}, nil
	}
	if _, ipnet, err := net.ParseCIDR(s); err == nil {
		if ones, _ := ipnet.Mask.Size(); ones == 0 {
			return model.AddressSpec{Any: true}, nil
		}
		return model.AddressSpec{IPNet: ipnet}, nil
	}
	ip := net.ParseIP(s)
	if ip == nil {
		return model.AddressSpec{}, fmt.Errorf("%q is not an IP address or CIDR block", s)
	}
	mask := net.CIDRMask(32, 32)
	if ip.To4() == nil {
		mask = net.CIDRMask(128, 128)
	}
	return model.AddressSpec{IPNet: &net.IPNet{IP: ip, Mask: mask}}, nil
}

// parsePortSpec accepts "*"/"any", a single port, or "low-high". The full
// range 0-65535 folds into the wildcard.
func parsePortSpec(s string) (model.PortSpec, error) {
	if s == "*" || strings.EqualFold(s, "any") {
		return model.PortSpec{Any: true}, nil
	}
	low, high := s, s
	if idx := strings.Index(s, "-"); idx >= 0 {
		low, high = strings.TrimSpace(s[:idx]), strings.TrimSpace(s[idx+1:])
	}
	lo, err := strconv.Atoi(low)
	if err != nil {
		return model.PortSpec{}, fmt.Errorf("%q is not a port number or range", s)
	}
	hi, err := strconv.Atoi(high)
	if err != nil {
		return model.PortSpec{}, fmt.Errorf("%q is not a port number or range", s)
	}
	if lo == 0 && hi == model.MaxPort {
		return model.PortSpec{Any: true}, nil
	}
	return model.PortSpec{Low: lo, High: hi}, nil
}
