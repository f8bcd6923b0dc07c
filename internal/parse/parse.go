// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package parse handles the tolerant decoding of array-like request inputs.
// Admin clients send list fields in several shapes: a repeated multipart
// field, a JSON-encoded array, a single JSON value, or a bare comma-separated
// string. Every list input goes through one of the functions here so the
// fallback order stays consistent across endpoints.
package parse

import (
	"encoding/json"
	"fmt"
	"strings"
)

// TagSpec is a caller-supplied request to create a new tag inline, as
// opposed to a reference to an existing tag by ID.
type TagSpec struct {
	Name   string  `json:"name"`
	NameAr *string `json:"nameAr,omitempty"`
}

// List normalizes a multipart field into a flat list of strings.
// Multiple form values pass through as-is; a single value is decoded with
// StringList. Empty entries are dropped.
func List(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	if len(values) == 1 {
		return StringList(values[0])
	}
	var out []string
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// StringList decodes a single raw value into a list of strings.
// Fallback order: JSON array, single JSON string, comma-separated text.
// `["a","b"]` and `"a,b"` and `a,b` all decode to ["a", "b"].
func StringList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	var arr []string
	if err := json.Unmarshal([]byte(raw), &arr); err == nil {
		return compact(arr)
	}

	var single string
	if err := json.Unmarshal([]byte(raw), &single); err == nil {
		raw = single
	}

	return compact(strings.Split(raw, ","))
}

// TagSpecs decodes inline tag specifications from a raw form value.
// Fallback order: whole-string JSON array, single JSON object (auto-wrapped
// into a one-element list), then one recovery attempt that wraps the raw
// string in brackets before giving up. Clients routinely send
// `{"name":"a"},{"name":"b"}` without the surrounding brackets; the
// bracket-wrap retry is a contract, not a convenience.
func TagSpecs(raw string) ([]TagSpec, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	var specs []TagSpec
	if err := json.Unmarshal([]byte(raw), &specs); err == nil {
		return specs, nil
	}

	var single TagSpec
	if err := json.Unmarshal([]byte(raw), &single); err == nil {
		return []TagSpec{single}, nil
	}

	if err := json.Unmarshal([]byte("["+raw+"]"), &specs); err == nil {
		return specs, nil
	}

	return nil, fmt.Errorf("invalid tag specification format: %q", raw)
}

// TagSpecList decodes inline tag specs from a multipart field, accepting
// both repeated fields (one JSON object each) and a single combined value.
func TagSpecList(values []string) ([]TagSpec, error) {
	if len(values) == 0 {
		return nil, nil
	}
	if len(values) == 1 {
		return TagSpecs(values[0])
	}
	var out []TagSpec
	for _, v := range values {
		specs, err := TagSpecs(v)
		if err != nil {
			return nil, err
		}
		out = append(out, specs...)
	}
	return out, nil
}

// compact trims whitespace and drops empty entries.
func compact(in []string) []string {
	var out []string
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
