package parser

import (
	"go.uber.org/zap"
)

// MaxScanLines bounds how far past a def line we look for its end
const MaxScanLines = 2000

// ScanResult describes where a method body ends
type ScanResult struct {
	EndLine    int  // 0-indexed line holding the method's closing end (best effort)
	Closed     bool // depth reached zero
	HitCeiling bool // stopped after MaxScanLines without closing
	Depth      int  // depth when scanning stopped
}

// BodyScanner finds the end of a method by counting block keywords.
// It is a heuristic: keywords inside strings, comments and symbols are counted
// too, and postfix/one-line forms can over-count.
type BodyScanner struct {
	logger *zap.Logger
	debug  bool
}

// NewBodyScanner creates a scanner. With debug set every depth change is logged.
func NewBodyScanner(logger *zap.Logger, debug bool) *BodyScanner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BodyScanner{
		logger: logger,
		debug:  debug,
	}
}

// FindMethodEnd scans forward from the line after defLine until the nesting
// depth opened by the def returns to zero. If the buffer ends first, the last
// line is returned.
func (s *BodyScanner) FindMethodEnd(lines []string, defLine int) ScanResult {
	depth := 1
	last := defLine
	examined := 0

	for i := defLine + 1; i < len(lines); i++ {
		line := lines[i]
		last = i

		if delta := depthDelta(line); delta != 0 {
			depth += delta
			if s.debug {
				s.logger.Debug("body scanner depth change",
					zap.Int("line", i),
					zap.Int("delta", delta),
					zap.Int("depth", depth),
					zap.String("text", line))
			}
		}

		if depth <= 0 {
			if s.debug {
				s.logger.Debug("body scanner closed method", zap.Int("defLine", defLine), zap.Int("endLine", i))
			}
			return ScanResult{EndLine: i, Closed: true, Depth: 0}
		}

		examined++
		if examined == MaxScanLines {
			s.logger.Warn("body scanner stopped at line limit",
				zap.Int("defLine", defLine),
				zap.Int("stoppedAt", i),
				zap.Int("depth", depth))
			return ScanResult{EndLine: i, HitCeiling: true, Depth: depth}
		}
	}

	if s.debug {
		s.logger.Debug("body scanner reached end of buffer", zap.Int("defLine", defLine), zap.Int("depth", depth))
	}
	return ScanResult{EndLine: last, Depth: depth}
}
