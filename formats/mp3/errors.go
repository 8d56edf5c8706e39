// SPDX-License-Identifier: EPL-2.0

package mp3

import "errors"

var ErrNotProbed = errors.New("stream info has not been read")
