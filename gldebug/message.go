// Package gldebug classifies and logs OpenGL debug output. The enum values
// are those of GL_KHR_debug, so the package does not depend on a GL binding.
package gldebug

import (
	"fmt"
	"io"
	"log"
)

type Source uint32

type Type uint32

type Severity uint32

const (
	SourceAPI            Source = 0x8246
	SourceWindowSystem   Source = 0x8247
	SourceShaderCompiler Source = 0x8248
	SourceThirdParty     Source = 0x8249
	SourceApplication    Source = 0x824A
	SourceOther          Source = 0x824B
)

const (
	TypeError              Type = 0x824C
	TypeDeprecatedBehavior Type = 0x824D
	TypeUndefinedBehavior  Type = 0x824E
	TypePortability        Type = 0x824F
	TypePerformance        Type = 0x8250
	TypeOther              Type = 0x8251
	TypeMarker             Type = 0x8268
)

const (
	SeverityHigh         Severity = 0x9146
	SeverityMedium       Severity = 0x9147
	SeverityLow          Severity = 0x9148
	SeverityNotification Severity = 0x826B
)

const unknown = "UNKNOWN"

// GL_DEBUG_SOURCE_OTHER is reported as UNKNOWN.
var sourceNames = map[Source]string{
	SourceAPI:            "API",
	SourceWindowSystem:   "WINDOW SYSTEM",
	SourceShaderCompiler: "SHADER COMPILER",
	SourceThirdParty:     "THIRD PARTY",
	SourceApplication:    "APPLICATION",
}

var typeNames = map[Type]string{
	TypeError:              "ERROR",
	TypeDeprecatedBehavior: "DEPRECATED BEHAVIOR",
	TypeUndefinedBehavior:  "UNDEFINED BEHAVIOR",
	TypePortability:        "PORTABILITY",
	TypePerformance:        "PERFORMANCE",
	TypeOther:              "OTHER",
	TypeMarker:             "MARKER",
}

var severityNames = map[Severity]string{
	SeverityHigh:         "HIGH",
	SeverityMedium:       "MEDIUM",
	SeverityLow:          "LOW",
	SeverityNotification: "NOTIFICATION",
}

func (s Source) String() string {
	if name, ok := sourceNames[s]; ok {
		return name
	}
	return unknown
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return unknown
}

func (s Severity) String() string {
	if name, ok := severityNames[s]; ok {
		return name
	}
	return unknown
}

// Message is a single report from the driver.
type Message struct {
	Source   Source
	Type     Type
	ID       uint32
	Severity Severity
	Text     string
}

func (m Message) String() string {
	return fmt.Sprintf("OpenGL Debug Message %d (type: %s) of %s raised from %s: %s",
		m.ID, m.Type, m.Severity, m.Source, m.Text)
}

// Sink writes one line per message.
type Sink struct {
	logger *log.Logger
}

// NewSink writes unprefixed lines to w.
func NewSink(w io.Writer) *Sink {
	return &Sink{logger: log.New(w, "", 0)}
}

// Handle runs on the thread that issued the GL call when synchronous debug
// output is enabled.
func (s *Sink) Handle(m Message) {
	s.logger.Println(m.String())
}
