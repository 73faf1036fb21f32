package gldebug

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceNames(t *testing.T) {
	cases := map[Source]string{
		SourceAPI:            "API",
		SourceWindowSystem:   "WINDOW SYSTEM",
		SourceShaderCompiler: "SHADER COMPILER",
		SourceThirdParty:     "THIRD PARTY",
		SourceApplication:    "APPLICATION",
		SourceOther:          "UNKNOWN",
		Source(0x1234):       "UNKNOWN",
	}
	for source, want := range cases {
		assert.Equal(t, want, source.String(), "source 0x%x", uint32(source))
	}
}

func TestTypeNames(t *testing.T) {
	cases := map[Type]string{
		TypeError:              "ERROR",
		TypeDeprecatedBehavior: "DEPRECATED BEHAVIOR",
		TypeUndefinedBehavior:  "UNDEFINED BEHAVIOR",
		TypePortability:        "PORTABILITY",
		TypePerformance:        "PERFORMANCE",
		TypeOther:              "OTHER",
		TypeMarker:             "MARKER",
		Type(0x8269):           "UNKNOWN",
	}
	for typ, want := range cases {
		assert.Equal(t, want, typ.String(), "type 0x%x", uint32(typ))
	}
}

func TestSeverityNames(t *testing.T) {
	assert.Equal(t, "HIGH", SeverityHigh.String())
	assert.Equal(t, "MEDIUM", SeverityMedium.String())
	assert.Equal(t, "LOW", SeverityLow.String())
	assert.Equal(t, "NOTIFICATION", SeverityNotification.String())
	assert.Equal(t, "UNKNOWN", Severity(0).String())
}

func TestSinkWritesOneLine(t *testing.T) {
	var buf bytes.Buffer
	sink := NewSink(&buf)

	sink.Handle(Message{
		Source:   SourceShaderCompiler,
		Type:     TypePerformance,
		ID:       131218,
		Severity: SeverityMedium,
		Text:     "shader recompiled",
	})

	out := buf.String()
	require.Equal(t, 1, strings.Count(out, "\n"))
	assert.Equal(t, "OpenGL Debug Message 131218 (type: PERFORMANCE) of MEDIUM raised from SHADER COMPILER: shader recompiled\n", out)
}

func TestSinkLinesHaveNoPrefix(t *testing.T) {
	var buf bytes.Buffer
	sink := NewSink(&buf)

	sink.Handle(Message{Source: SourceAPI, Type: TypeError, ID: 7, Severity: SeverityHigh, Text: "x"})
	sink.Handle(Message{Source: SourceOther, Type: TypeMarker, ID: 8, Severity: SeverityLow, Text: "y"})

	assert.Equal(t, "OpenGL Debug Message 7 (type: ERROR) of HIGH raised from API: x\n"+
		"OpenGL Debug Message 8 (type: MARKER) of LOW raised from UNKNOWN: y\n", buf.String())
}
