package common

import (
	"io"

	"fjacquet/creditcalc/internal/fileutils"
)

// Output routes rendered results either to File or to Stdout. Messages for
// the user, such as the incorrect parameters line, always go to Stdout and
// the reason for a rejection goes to Stderr when it is set.
type Output struct {
	Stdout io.Writer
	Stderr io.Writer
	File   string
}

// Write calls render with the destination writer. A file destination is
// only replaced when render succeeds.
func (o Output) Write(render func(io.Writer) error) error {
	if o.File == "" {
		return render(o.Stdout)
	}

	f, err := fileutils.CreateOutput(o.File)
	if err != nil {
		return err
	}
	if err := render(f); err != nil {
		_ = f.Discard()
		return err
	}
	return f.Commit()
}
