/* Copyright (c) 2017 Jeffrey Massung
 *
 * This software is provided 'as-is', without any express or implied
 * warranty.  In no event will the authors be held liable for any damages
 * arising from the use of this software.
 *
 * Permission is granted to anyone to use this software for any purpose,
 * including commercial applications, and to alter it and redistribute it
 * freely, subject to the following restrictions:
 *
 * 1. The origin of this software must not be misrepresented; you must not
 *    claim that you wrote the original software. If you use this software
 *    in a product, an acknowledgment in the product documentation would be
 *    appreciated but is not required.
 *
 * 2. Altered source versions must be plainly marked as such, and must not be
 *    misrepresented as being the original software.
 *
 * 3. This notice may not be removed or altered from any source distribution.
 */

package driver

import "fmt"

// ScrollLogger is an on-screen scrollback log implementing chip8.Logger, so
// a windowed driver can show the core's diagnostic stream instead of only
// writing to stdout. Info/Debug/Err differ only in a level prefix; Err
// lines additionally always force the view to scroll to the newest line.
type ScrollLogger struct {
	buf []string
	pos int
}

// NewScrollLogger creates an empty log.
func NewScrollLogger() *ScrollLogger {
	return &ScrollLogger{buf: make([]string, 0, 256)}
}

func (log *ScrollLogger) append(level, format string, args []interface{}) {
	scroll := log.pos == len(log.buf)
	line := level + fmt.Sprintf(format, args...)
	log.buf = append(log.buf, line)
	if scroll {
		log.pos = len(log.buf)
	}
}

func (log *ScrollLogger) Info(format string, args ...interface{})  { log.append("", format, args) }
func (log *ScrollLogger) Debug(format string, args ...interface{}) { log.append("# ", format, args) }

func (log *ScrollLogger) Err(format string, args ...interface{}) {
	log.append("! ", format, args)
	log.End()
}

// Window returns the n most recent (or scrolled-to) lines.
func (log *ScrollLogger) Window(n int) []string {
	start := log.pos - n
	if start < 0 {
		start = 0
	}
	if start+n >= len(log.buf) {
		return log.buf[start:]
	}
	return log.buf[start : start+n]
}

// Home scrolls to the beginning of the log.
func (log *ScrollLogger) Home() { log.pos = 0 }

// End scrolls to the end of the log.
func (log *ScrollLogger) End() { log.pos = len(log.buf) }

// ScrollUp moves the view back one line.
func (log *ScrollLogger) ScrollUp() {
	log.pos--
	if log.pos < 0 {
		log.Home()
	}
}

// ScrollDown moves the view forward one line, never leaving less than a
// full window's worth of backlog above it.
func (log *ScrollLogger) ScrollDown(windowSize int) {
	log.pos++
	if log.pos <= windowSize {
		log.pos = windowSize + 1
	}
	if log.pos >= len(log.buf) {
		log.End()
	}
}
