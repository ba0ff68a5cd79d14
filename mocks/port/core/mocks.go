// Package core provides hand-rolled test doubles for the domain core ports.
package core

import (
	"context"
	"sync"
	"time"

	"github.com/brightpath-edu/school-ledger/internal/domain/entity"
	coreport "github.com/brightpath-edu/school-ledger/internal/domain/port/core"
)

// StubTimeProvider returns a fixed time from Now
type StubTimeProvider struct {
	Fixed time.Time
}

// NewStubTimeProvider creates a time provider pinned to the given instant
func NewStubTimeProvider(fixed time.Time) *StubTimeProvider {
	return &StubTimeProvider{Fixed: fixed}
}

func (p *StubTimeProvider) Now() time.Time {
	return p.Fixed
}

func (p *StubTimeProvider) Since(t time.Time) coreport.Duration {
	return coreport.Duration(p.Fixed.Sub(t))
}

func (p *StubTimeProvider) WithTimeout(ctx context.Context, timeout coreport.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout.Std())
}

// NullLogger swallows all log output in tests
type NullLogger struct {
	level coreport.LogLevel
}

// NewNullLogger creates a logger that discards everything
func NewNullLogger() *NullLogger {
	return &NullLogger{level: coreport.LogLevelInfo}
}

func (l *NullLogger) SetLevel(level coreport.LogLevel)          { l.level = level }
func (l *NullLogger) GetLevel() coreport.LogLevel               { return l.level }
func (l *NullLogger) Debug(message string, fields map[string]any) {}
func (l *NullLogger) Info(message string, fields map[string]any)  {}
func (l *NullLogger) Warn(message string, fields map[string]any)  {}
func (l *NullLogger) Error(message string, fields map[string]any) {}
func (l *NullLogger) Flush() error                              { return nil }

// ScriptedDigitSource replays a fixed digit sequence, then repeats the
// fallback digit forever. Used to force admission number collisions.
type ScriptedDigitSource struct {
	mu       sync.Mutex
	Digits   []int
	Fallback int
	pos      int
}

// NewScriptedDigitSource creates a digit source replaying the given sequence
func NewScriptedDigitSource(digits []int, fallback int) *ScriptedDigitSource {
	return &ScriptedDigitSource{Digits: digits, Fallback: fallback}
}

func (s *ScriptedDigitSource) Next() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pos < len(s.Digits) {
		d := s.Digits[s.pos]
		s.pos++
		return d, nil
	}
	return s.Fallback, nil
}

// SinkCall records one delivery through the RecordingSink
type SinkCall struct {
	Parent  *entity.User
	Student *entity.Student
}

// RecordingSink captures enrollment notifications instead of delivering them
type RecordingSink struct {
	mu    sync.Mutex
	Calls []SinkCall
}

// NewRecordingSink creates an empty recording sink
func NewRecordingSink() *RecordingSink {
	return &RecordingSink{}
}

func (s *RecordingSink) Send(parent *entity.User, student *entity.Student) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls = append(s.Calls, SinkCall{Parent: parent, Student: student})
}

// Count returns how many notifications were delivered
func (s *RecordingSink) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Calls)
}
