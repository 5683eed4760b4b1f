package logger

import (
	"log"
)

const (
	DEBUG int = iota
	INFO
	WARNING
	ERROR
	SILENCE
)

type Logger interface {
	Debugf(msg string, a ...any)
	Infof(msg string, a ...any)
	Warnf(msg string, a ...any)
	Errorf(msg string, a ...any)
}

type defaultLogger struct {
	level  int
	prefix string
}

func NewLogger(level int) *defaultLogger {
	return &defaultLogger{level: level}
}

// NewPrefixLogger returns a logger whose lines begin with the given component
// name.
func NewPrefixLogger(level int, prefix string) *defaultLogger {
	return &defaultLogger{level: level, prefix: "[" + prefix + "] "}
}

func (l *defaultLogger) Debugf(msg string, a ...any) {
	if l.level <= DEBUG {
		log.Printf(l.prefix+msg+"\n", a...)
	}
}

func (l *defaultLogger) Infof(msg string, a ...any) {
	if l.level <= INFO {
		log.Printf(l.prefix+msg+"\n", a...)
	}
}

func (l *defaultLogger) Warnf(msg string, a ...any) {
	if l.level <= WARNING {
		log.Printf(l.prefix+msg+"\n", a...)
	}
}

func (l *defaultLogger) Errorf(msg string, a ...any) {
	if l.level <= ERROR {
		log.Printf(l.prefix+msg+"\n", a...)
	}
}
