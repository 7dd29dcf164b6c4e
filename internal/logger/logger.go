// Package logger provides operational diagnostics for the CLI wrapper
// around the wikitext pipeline: I/O errors reading input, include-
// fetch failures, malformed flags. It is deliberately separate from
// ast.ParseWarning, which is parser *data* returned to the caller,
// not a log stream (see spec.md §3 and §7).
//
// Logging is designed to look and feel like clang's error format, the
// same goal stated by the teacher's logging package.
package logger

import (
	"fmt"
	"os"
	"strings"
	"sync"
)

type Log struct {
	addMsg    func(Msg)
	hasErrors func() bool
	done      func() []Msg
}

func (l Log) AddError(source *Source, loc int, text string) {
	l.addMsg(Msg{Source: source, Start: loc, Text: text, Kind: Error})
}

func (l Log) AddWarning(source *Source, loc int, text string) {
	l.addMsg(Msg{Source: source, Start: loc, Text: text, Kind: Warning})
}

func (l Log) HasErrors() bool {
	return l.hasErrors()
}

func (l Log) Done() []Msg {
	return l.done()
}

type MsgKind uint8

const (
	Error MsgKind = iota
	Warning
)

type Msg struct {
	Source *Source
	Start  int
	Text   string
	Kind   MsgKind
}

// Source is the text a diagnostic's span refers to, so the logger can
// render a source-context line the way clang does.
type Source struct {
	PrettyPath string
	Contents   string
}

func plural(prefix string, count int) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, prefix)
	}
	return fmt.Sprintf("%d %ss", count, prefix)
}

func errorAndWarningSummary(errors, warnings int) string {
	switch {
	case errors == 0:
		return plural("warning", warnings)
	case warnings == 0:
		return plural("error", errors)
	default:
		return fmt.Sprintf("%s and %s", plural("warning", warnings), plural("error", errors))
	}
}

type TerminalInfo struct {
	IsTTY           bool
	UseColorEscapes bool
	Width           int
}

type StderrColor uint8

const (
	ColorIfTerminal StderrColor = iota
	ColorNever
	ColorAlways
)

type StderrOptions struct {
	IncludeSource bool
	ErrorLimit    int
	Color         StderrColor
}

// NewStderrLog returns a synchronous logger that writes each message
// to stderr as it is added. Unlike the teacher's modern (channel and
// goroutine) logger, this one is a plain mutex-guarded closure: the
// wikitext pipeline is single-threaded per parse (spec.md §5), so
// there is no asynchronous producer to drain.
func NewStderrLog(options StderrOptions) Log {
	var mutex sync.Mutex
	var msgs []Msg
	errors, warnings := 0, 0
	errorLimitWasHit := false

	terminalInfo := GetTerminalInfo(os.Stderr)
	switch options.Color {
	case ColorNever:
		terminalInfo.UseColorEscapes = false
	case ColorAlways:
		terminalInfo.UseColorEscapes = SupportsColorEscapes
	}

	return Log{
		addMsg: func(msg Msg) {
			mutex.Lock()
			defer mutex.Unlock()
			msgs = append(msgs, msg)

			if errorLimitWasHit {
				return
			}

			switch msg.Kind {
			case Error:
				errors++
			case Warning:
				warnings++
			}
			os.Stderr.WriteString(msg.String(options, terminalInfo))

			if options.ErrorLimit != 0 && errors >= options.ErrorLimit {
				errorLimitWasHit = true
				fmt.Fprintf(os.Stderr, "%s (error limit reached, further messages are not shown)\n",
					errorAndWarningSummary(errors, warnings))
			}
		},
		hasErrors: func() bool {
			mutex.Lock()
			defer mutex.Unlock()
			return errors > 0
		},
		done: func() []Msg {
			mutex.Lock()
			defer mutex.Unlock()
			if !errorLimitWasHit && (warnings != 0 || errors != 0) {
				fmt.Fprintf(os.Stderr, "%s\n", errorAndWarningSummary(errors, warnings))
			}
			return msgs
		},
	}
}

// NewDeferLog accumulates messages without printing, for tests and
// for callers that want to inspect diagnostics before deciding what
// to do with them.
func NewDeferLog() Log {
	var mutex sync.Mutex
	var msgs []Msg
	var hasErrors bool

	return Log{
		addMsg: func(msg Msg) {
			mutex.Lock()
			defer mutex.Unlock()
			if msg.Kind == Error {
				hasErrors = true
			}
			msgs = append(msgs, msg)
		},
		hasErrors: func() bool {
			mutex.Lock()
			defer mutex.Unlock()
			return hasErrors
		},
		done: func() []Msg {
			mutex.Lock()
			defer mutex.Unlock()
			return msgs
		},
	}
}

const (
	colorReset     = "\033[0m"
	colorRed       = "\033[31m"
	colorMagenta   = "\033[35m"
	colorBold      = "\033[1m"
	colorResetBold = "\033[0;1m"
)

func (msg Msg) String(options StderrOptions, terminalInfo TerminalInfo) string {
	kind := "error"
	kindColor := colorRed
	if msg.Kind == Warning {
		kind = "warning"
		kindColor = colorMagenta
	}

	if msg.Source == nil {
		if terminalInfo.UseColorEscapes {
			return fmt.Sprintf("%s%s%s: %s%s%s\n", colorBold, kindColor, kind, colorResetBold, msg.Text, colorReset)
		}
		return fmt.Sprintf("%s: %s\n", kind, msg.Text)
	}

	if !options.IncludeSource {
		if terminalInfo.UseColorEscapes {
			return fmt.Sprintf("%s%s: %s%s: %s%s%s\n",
				colorBold, msg.Source.PrettyPath, kindColor, kind, colorResetBold, msg.Text, colorReset)
		}
		return fmt.Sprintf("%s: %s: %s\n", msg.Source.PrettyPath, kind, msg.Text)
	}

	line, col, lineText, indent := locationDetail(msg.Source.Contents, msg.Start)
	if terminalInfo.UseColorEscapes {
		return fmt.Sprintf("%s%s:%d:%d: %s%s: %s%s\n%s\n%s%s^%s\n",
			colorBold, msg.Source.PrettyPath, line, col,
			kindColor, kind, colorResetBold, msg.Text,
			lineText, colorReset, indent, colorReset)
	}
	return fmt.Sprintf("%s:%d:%d: %s: %s\n%s\n%s^\n",
		msg.Source.PrettyPath, line, col, kind, msg.Text, lineText, indent)
}

func locationDetail(contents string, offset int) (line, col int, lineText, indent string) {
	if offset > len(contents) {
		offset = len(contents)
	}
	lineStart := strings.LastIndexByte(contents[:offset], '\n') + 1
	lineEnd := len(contents)
	if idx := strings.IndexByte(contents[offset:], '\n'); idx >= 0 {
		lineEnd = offset + idx
	}
	line = strings.Count(contents[:lineStart], "\n") + 1
	col = offset - lineStart
	lineText = contents[lineStart:lineEnd]
	indent = strings.Repeat(" ", col)
	return
}
