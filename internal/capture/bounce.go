package capture

import (
	"fmt"
	"io"
)

// BounceMessage is the synthetic non-delivery response, an enhanced
// status code per RFC 3463 that no real failure would ever produce.
const BounceMessage = "5.999.999 Testing Error Message"

// Bounce writes the synthetic non-delivery response for the MTA to
// report back to the sender.
func Bounce(w io.Writer) {
	fmt.Fprintln(w, BounceMessage)
}
