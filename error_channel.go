// ./error_channel.go
package calceph

/*
Package calceph collects the messages of the native error callback.

This program is free software; you can redistribute it and/or
modify it under the terms of the GNU General Public License
as published by the Free Software Foundation; either version 2
of the License, or (at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program; if not, write to the Free Software
Foundation, Inc., 51 Franklin Street, Fifth Floor, Boston, MA
02110-1301, USA.
*/

import (
	"sync"
	"unicode/utf8"

	"github.com/mshafiee/calceph/internal/native"
)

// noMessage stands in when a native call fails without reporting anything.
const noMessage = "the native library signalled a failure without a message"

// errorChannel turns the native library's process-wide error callback into
// per-call messages.
//
// callMu is held across a native call and the read of the message it
// produced, so no other failure can overwrite the buffer in between. The
// callback only takes mu, which keeps it from deadlocking against a caller
// holding callMu.
type errorChannel struct {
	callMu sync.Mutex

	mu   sync.Mutex
	last string
}

// lastError is the process-wide channel shared by every handle and backend.
var lastError errorChannel

// record is the native error handler. The library's messages are documented
// as UTF-8; anything else means the binding is broken.
func (c *errorChannel) record(msg []byte) {
	if !utf8.Valid(msg) {
		panic("calceph: native library reported a non-UTF-8 error message")
	}
	s := string(msg)
	c.mu.Lock()
	c.last = s
	c.mu.Unlock()
}

// readLastError returns a copy of the most recent message.
func (c *errorChannel) readLastError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

// exclusive runs fn with the call lock held and the buffer cleared. fn may
// read the buffer with readLastError.
func (c *errorChannel) exclusive(fn func()) {
	c.callMu.Lock()
	defer c.callMu.Unlock()
	c.mu.Lock()
	c.last = ""
	c.mu.Unlock()
	fn()
}

// call runs one native operation that signals failure by returning false.
func (c *errorChannel) call(op string, fn func() bool) error {
	var err error
	c.exclusive(func() {
		if !fn() {
			err = c.failure(op)
		}
	})
	return err
}

// failure builds the error for op from the buffer. Call with callMu held.
func (c *errorChannel) failure(op string) *NativeError {
	msg := c.readLastError()
	if msg == "" {
		msg = noMessage
	}
	return &NativeError{Op: op, Message: msg}
}

// registerErrorHandler installs the channel on lib. Safe to repeat.
func registerErrorHandler(lib native.Library) {
	lastError.callMu.Lock()
	defer lastError.callMu.Unlock()
	lib.SetErrorHandler(lastError.record)
}
