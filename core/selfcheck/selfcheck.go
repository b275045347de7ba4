// Package selfcheck runs the built-in conformance vectors through the
// codecs and reports per-vector results.
package selfcheck

import (
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/zeebo/blake3"

	"github.com/FocuswithJustin/ende/core/codec"
	"github.com/FocuswithJustin/ende/core/errors"
)

// Version is the report format version.
const Version = "1.0.0"

// Status values for reports.
const (
	StatusPass = "pass"
	StatusFail = "fail"
)

// Check types.
const (
	CheckEncode    = "ENCODE"
	CheckDecode    = "DECODE"
	CheckRoundtrip = "ROUNDTRIP"
)

var now = time.Now

// Vector is one conformance case.
//
// ENCODE feeds CodePoints to the encoder and expects Units. DECODE feeds
// Units to the decoder and expects CodePoints. ROUNDTRIP encodes then
// decodes CodePoints and expects them back. A non-zero WantKind expects
// that failure at WantOffset instead of output.
type Vector struct {
	Label      string
	Check      string
	Encoding   codec.Encoding
	CodePoints []uint32
	Units      []uint32
	WantKind   codec.Kind
	WantOffset int
}

// Report is the output of a self-check execution.
type Report struct {
	ReportVersion    string        `json:"report_version"`
	CreatedAt        string        `json:"created_at"`
	Results          []CheckResult `json:"results"`
	Status           string        `json:"status"`
	TranscriptBLAKE3 string        `json:"transcript_blake3"`
}

// CheckResult is the result of a single vector.
type CheckResult struct {
	CheckType string `json:"check_type"`
	Label     string `json:"label"`
	Encoding  string `json:"encoding"`
	Pass      bool   `json:"pass"`
	Expected  string `json:"expected"`
	Actual    string `json:"actual"`
}

// Run executes the built-in vectors.
func Run() *Report {
	return RunVectors(Vectors())
}

// RunVectors executes vectors in order and builds a report.
func RunVectors(vectors []Vector) *Report {
	results := make([]CheckResult, 0, len(vectors))
	status := StatusPass
	for _, v := range vectors {
		r := execute(v)
		if !r.Pass {
			status = StatusFail
		}
		results = append(results, r)
	}

	report := &Report{
		ReportVersion: Version,
		CreatedAt:     now().UTC().Format(time.RFC3339),
		Results:       results,
		Status:        status,
	}
	sum := blake3.Sum256(report.Transcript())
	report.TranscriptBLAKE3 = hex.EncodeToString(sum[:])
	return report
}

// Transcript is the canonical text form of the results, one line per
// vector. It excludes the timestamp so equal runs hash equally.
func (r *Report) Transcript() []byte {
	var b strings.Builder
	for _, res := range r.Results {
		status := StatusFail
		if res.Pass {
			status = StatusPass
		}
		fmt.Fprintf(&b, "%s %s %s expected=%s actual=%s %s\n",
			res.CheckType, res.Encoding, res.Label, res.Expected, res.Actual, status)
	}
	return []byte(b.String())
}

// Verify compares the transcript digest against a known-good value.
func (r *Report) Verify(golden string) error {
	if !strings.EqualFold(strings.TrimSpace(golden), r.TranscriptBLAKE3) {
		return errors.NewValidation("transcript digest", r.TranscriptBLAKE3,
			fmt.Sprintf("expected %s", golden))
	}
	return nil
}

// Failed returns the results that did not pass.
func (r *Report) Failed() []CheckResult {
	var out []CheckResult
	for _, res := range r.Results {
		if !res.Pass {
			out = append(out, res)
		}
	}
	return out
}

// ToJSON serializes the report to JSON.
func (r *Report) ToJSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

func execute(v Vector) CheckResult {
	res := CheckResult{
		CheckType: v.Check,
		Label:     v.Label,
		Encoding:  v.Encoding.String(),
	}

	var (
		got  []uint32
		err  error
		want []uint32
	)
	switch v.Check {
	case CheckEncode:
		got, err = encode(v.Encoding, v.CodePoints)
		want = v.Units
	case CheckDecode:
		got, err = decode(v.Encoding, v.Units)
		want = v.CodePoints
	case CheckRoundtrip:
		var units []uint32
		if units, err = encode(v.Encoding, v.CodePoints); err == nil {
			got, err = decode(v.Encoding, units)
		}
		want = v.CodePoints
	default:
		res.Expected = "known check type"
		res.Actual = fmt.Sprintf("unknown check type %q", v.Check)
		return res
	}

	if v.WantKind != 0 {
		res.Expected = outcome(nil, codec.Error{Kind: v.WantKind, Offset: v.WantOffset})
	} else {
		res.Expected = outcome(want, codec.Error{})
	}
	res.Actual = actual(got, err)
	res.Pass = res.Expected == res.Actual
	return res
}

// encode and decode go through the serialized form so the byte order
// handling is covered too.
func encode(enc codec.Encoding, cps []uint32) ([]uint32, error) {
	data, err := enc.Marshal(cps, binary.BigEndian)
	if err != nil {
		return nil, err
	}
	return enc.Units(data, binary.BigEndian)
}

func decode(enc codec.Encoding, units []uint32) ([]uint32, error) {
	data, err := enc.PackUnits(units, binary.BigEndian)
	if err != nil {
		return nil, err
	}
	return enc.Unmarshal(data, binary.BigEndian)
}

func actual(got []uint32, err error) string {
	if err == nil {
		return outcome(got, codec.Error{})
	}
	var ce *codec.Error
	if errors.As(err, &ce) {
		return outcome(nil, *ce)
	}
	return "error(" + err.Error() + ")"
}

func outcome(values []uint32, failure codec.Error) string {
	if failure.Kind != 0 {
		return fmt.Sprintf("%s@%d", strings.ReplaceAll(failure.Kind.String(), " ", "_"), failure.Offset)
	}
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%X", v)
	}
	return "[" + strings.Join(parts, ",") + "]"
}
