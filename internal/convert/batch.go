package convert

import (
	"errors"
	"fmt"
	"strings"

	"subclash/internal/link"
)

var (
	ErrDuplicate = errors.New("duplicate endpoint")
	ErrNoRecords = errors.New("no links")
)

type Options struct {
	// Dedupe drops records whose endpoint signature was already seen.
	Dedupe bool
	// Reserved names no proxy may take, such as the output group's name.
	Reserved []string
}

// Failure is a line that did not make it into the result.
type Failure struct {
	Line int // 1-based position in the input
	Raw  string
	Err  error
}

type Result struct {
	Records  []link.Record
	Failures []Failure
}

// Batch parses every line in order. Failures are collected, never fatal.
func Batch(lines []string, opts Options) Result {
	var res Result
	seen := make(map[string]int)

	for i, raw := range lines {
		r, err := link.Parse(raw)
		if err != nil {
			res.Failures = append(res.Failures, Failure{Line: i + 1, Raw: raw, Err: err})
			continue
		}

		if opts.Dedupe {
			hash := r.Hash()
			if first, ok := seen[hash]; ok {
				res.Failures = append(res.Failures, Failure{
					Line: i + 1,
					Raw:  raw,
					Err:  fmt.Errorf("%w: same as line %d", ErrDuplicate, first),
				})
				continue
			}
			seen[hash] = i + 1
		}

		if strings.TrimSpace(r.Name) == "" {
			r.Name = fmt.Sprintf("Proxy%d", len(res.Records)+1)
		}
		res.Records = append(res.Records, *r)
	}

	uniqueNames(res.Records, opts.Reserved)
	return res
}

// Err returns ErrNoRecords when nothing could be parsed.
func (r Result) Err() error {
	if len(r.Records) == 0 {
		return ErrNoRecords
	}
	return nil
}

// FailureCounts groups failures by reason for the end of run summary.
func (r Result) FailureCounts() map[string]int {
	counts := make(map[string]int)
	for _, f := range r.Failures {
		var pe *link.ParseError
		switch {
		case errors.As(f.Err, &pe):
			counts[string(pe.Reason)]++
		case errors.Is(f.Err, ErrDuplicate):
			counts["duplicate"]++
		default:
			counts["unknown"]++
		}
	}
	return counts
}

// builtinPolicies are proxy names every Clash core defines on its own.
var builtinPolicies = []string{"DIRECT", "REJECT", "REJECT-DROP", "PASS", "COMPATIBLE", "GLOBAL"}

// uniqueNames appends " 2", " 3", ... to repeated names so that every proxy
// can be referenced unambiguously by the group. Names taken by a built-in
// policy or listed in reserved are renamed on their first occurrence too.
func uniqueNames(records []link.Record, reserved []string) {
	taken := make(map[string]bool, len(builtinPolicies)+len(reserved))
	for _, name := range builtinPolicies {
		taken[name] = true
	}
	for _, name := range reserved {
		taken[name] = true
	}

	used := make(map[string]bool, len(records)+len(taken))
	for name := range taken {
		used[name] = true
	}
	for i := range records {
		used[records[i].Name] = true
	}

	counts := make(map[string]int, len(records))
	for i := range records {
		base := records[i].Name
		counts[base]++
		if counts[base] == 1 && !taken[base] {
			continue
		}
		n := max(counts[base], 2)
		name := fmt.Sprintf("%s %d", base, n)
		for used[name] {
			n++
			name = fmt.Sprintf("%s %d", base, n)
		}
		counts[base] = n
		used[name] = true
		records[i].Name = name
	}
}
