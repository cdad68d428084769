// Package trace reads the textual arrival trace format described by the
// external interface: one packet arrival per line, whitespace-separated,
// with an optional trailing weight.
package trace

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bassosimone/wfqsim"
)

// maxAddrLen is the maximum length of an address field, matching the
// original 15-character bound (a legacy of fixed-size address buffers).
const maxAddrLen = 15

// Parser reads [wfqsim.ArrivalEvent] values from a line-oriented trace and
// implements [wfqsim.ArrivalSource]. Malformed lines are skipped after a
// diagnostic is logged; the stream is otherwise assumed to already be
// sorted in nondecreasing arrival-time order, as required by the scheduler.
type Parser struct {
	scanner *bufio.Scanner
	logger  wfqsim.Logger
	lineNo  int

	// OnMalformed, if non-nil, is invoked once per line that fails to
	// parse, in addition to the warning logged through logger. Callers
	// that report metrics use this to count malformed input without the
	// parser importing a metrics package directly.
	OnMalformed func(line string, err error)
}

var _ wfqsim.ArrivalSource = (*Parser)(nil)

// NewParser creates a [Parser] reading from r. A nil logger is replaced
// with a [wfqsim.NullLogger].
func NewParser(r io.Reader, logger wfqsim.Logger) *Parser {
	if logger == nil {
		logger = &wfqsim.NullLogger{}
	}
	return &Parser{
		scanner: bufio.NewScanner(r),
		logger:  logger,
	}
}

// Next implements [wfqsim.ArrivalSource]. It skips malformed lines
// internally and only returns ok == false once the underlying reader is
// exhausted.
func (p *Parser) Next() (wfqsim.ArrivalEvent, bool) {
	for p.scanner.Scan() {
		p.lineNo++
		line := p.scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		ev, err := p.parseLine(line)
		if err != nil {
			p.logger.Warnf("trace: line %d: %s: %q", p.lineNo, err.Error(), line)
			if p.OnMalformed != nil {
				p.OnMalformed(line, err)
			}
			continue
		}
		return ev, true
	}
	return wfqsim.ArrivalEvent{}, false
}

// parseLine parses a single trace line into an [wfqsim.ArrivalEvent].
//
//	<arrival_time> <src_addr> <src_port> <dst_addr> <dst_port> <length> [<weight>]
func (p *Parser) parseLine(line string) (wfqsim.ArrivalEvent, error) {
	fields := strings.Fields(line)
	if len(fields) < 6 {
		return wfqsim.ArrivalEvent{}, fmt.Errorf("malformed input: expected at least 6 fields, got %d", len(fields))
	}

	arrivalTime, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return wfqsim.ArrivalEvent{}, fmt.Errorf("malformed input: bad arrival_time: %w", err)
	}
	srcPort, err := strconv.Atoi(fields[2])
	if err != nil {
		return wfqsim.ArrivalEvent{}, fmt.Errorf("malformed input: bad src_port: %w", err)
	}
	dstPort, err := strconv.Atoi(fields[4])
	if err != nil {
		return wfqsim.ArrivalEvent{}, fmt.Errorf("malformed input: bad dst_port: %w", err)
	}
	length, err := strconv.ParseInt(fields[5], 10, 64)
	if err != nil {
		return wfqsim.ArrivalEvent{}, fmt.Errorf("malformed input: bad length: %w", err)
	}

	ev := wfqsim.ArrivalEvent{
		ArrivalTime: arrivalTime,
		Key: wfqsim.FlowKey{
			SrcAddr: truncateAddr(fields[1]),
			SrcPort: srcPort,
			DstAddr: truncateAddr(fields[3]),
			DstPort: dstPort,
		},
		Length: length,
	}

	if len(fields) >= 7 {
		weight, err := strconv.ParseFloat(fields[6], 64)
		if err != nil {
			return wfqsim.ArrivalEvent{}, fmt.Errorf("malformed input: bad weight: %w", err)
		}
		if weight <= 0 {
			p.logger.Warnf("trace: line %d: invalid weight %v, not applied to the flow", p.lineNo, weight)
		}
		ev.Weight = &weight
	}

	return ev, nil
}

func truncateAddr(s string) string {
	if len(s) <= maxAddrLen {
		return s
	}
	return s[:maxAddrLen]
}
