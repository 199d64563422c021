// Package output builds termenv outputs that honour NO_COLOR consistently
// across the logger and the report renderer.
package output

import (
	"io"
	"os"

	"github.com/muesli/termenv"
)

// Profile returns the colour profile for w. NO_COLOR always wins; otherwise
// the profile is detected from the environment.
func Profile() termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	return termenv.EnvColorProfile()
}

// New creates a termenv.Output writing to w. A nil writer means os.Stderr.
func New(w io.Writer, opts ...termenv.OutputOption) *termenv.Output {
	if w == nil {
		w = os.Stderr
	}

	opts = append(opts,
		termenv.WithProfile(Profile()),
		termenv.WithTTY(true),
	)

	return termenv.NewOutput(w, opts...)
}
