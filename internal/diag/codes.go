package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка - на первое время
	UnknownCode Code = 0

	// Option handling
	OptInfo         Code = 1000
	OptMissingValue Code = 1001
	OptUnknownFlag  Code = 1002

	// Decoding
	DecodeInfo            Code = 2000
	DecodeUnmappableChar  Code = 2001
	DecodeUnreadableFile  Code = 2002
	DecodeEmptySourceFile Code = 2003

	// Checking (reference engine)
	ChkInfo               Code = 3000
	ChkUnclosedDelimiter  Code = 3001
	ChkUnexpectedClose    Code = 3002
	ChkMissingDeclaration Code = 3003
	ChkStrayControlChar   Code = 3004
	ChkUnterminatedString Code = 3005

	// Processors / plugins
	ProcInfo             Code = 4000
	ProcFailure          Code = 4001
	ProcUnknownProcessor Code = 4002
	PluginFailure        Code = 4003

	// Engine faults
	EngInfo       Code = 9000
	EngineFailure Code = 9001
	EngEmitFailed Code = 9002
)

var codeDescription = map[Code]string{
	UnknownCode: "unknown error",

	OptInfo:         "option note",
	OptMissingValue: "option is missing its value",
	OptUnknownFlag:  "unrecognized option",

	DecodeInfo:            "decoding note",
	DecodeUnmappableChar:  "unmappable character for the resolved encoding",
	DecodeUnreadableFile:  "source file could not be read",
	DecodeEmptySourceFile: "source file is empty",

	ChkInfo:               "check note",
	ChkUnclosedDelimiter:  "unclosed delimiter",
	ChkUnexpectedClose:    "unexpected closing delimiter",
	ChkMissingDeclaration: "no top-level declaration found",
	ChkStrayControlChar:   "stray control character in source",
	ChkUnterminatedString: "unterminated string literal",

	ProcInfo:             "processor note",
	ProcFailure:          "annotation processor failed",
	ProcUnknownProcessor: "processor not found on processor path",
	PluginFailure:        "compiler plugin failed",

	EngInfo:       "engine note",
	EngineFailure: "compiler engine failed",
	EngEmitFailed: "failed to write output artifact",
}

// ID returns a stable short identifier, grouped by subsystem.
func (c Code) ID() string {
	ic := int(c)
	switch {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("OPT%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("DEC%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("CHK%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("PRC%04d", ic)
	case ic >= 9000 && ic < 10000:
		return fmt.Sprintf("ENG%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
