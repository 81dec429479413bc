// Package logs tags std log lines with a coloured level.
package logs

import (
	"fmt"
	"log"

	"github.com/gookit/color"
)

var (
	infoTag  = color.Cyan.Sprint("INFO")
	warnTag  = color.Yellow.Sprint("WARN")
	errorTag = color.Red.Sprint("ERROR")
)

// Plain disables colour codes, for log files and tests.
func Plain() {
	infoTag, warnTag, errorTag = "INFO", "WARN", "ERROR"
}

func Infof(format string, args ...any) {
	output(infoTag, format, args...)
}

func Warnf(format string, args ...any) {
	output(warnTag, format, args...)
}

func Errorf(format string, args ...any) {
	output(errorTag, format, args...)
}

func output(tag, format string, args ...any) {
	_ = log.Output(3, tag+" "+fmt.Sprintf(format, args...))
}
