package binout

import (
	"fmt"
	"io"
)

// PrintRecords writes a human-readable dump of every file's parsed index to
// w: per file, each variable's name, element type, byte length, and every
// directory/offset pair it was recorded at. It mirrors the original
// format's binout_print_records debug dump, retargeted at an io.Writer
// instead of a hardcoded stdout so tests can capture it.
func PrintRecords(a *Archive, w io.Writer) error {
	if _, err := fmt.Fprintf(w, "%d file(s)\n", len(a.files)); err != nil {
		return err
	}

	for _, f := range a.files {
		if _, err := fmt.Fprintf(w, "%s: %d variable(s)\n", f.name, len(f.pointers)); err != nil {
			return err
		}

		for _, dp := range f.pointers {
			if _, err := fmt.Fprintf(w, "  %s (%s, %d byte(s), %d record(s))\n",
				dp.Name, dp.TypeID, dp.DataLength, len(dp.Records)); err != nil {
				return err
			}

			for _, rec := range dp.Records {
				if _, err := fmt.Fprintf(w, "    %s @ %d\n", rec.Path, rec.FilePos); err != nil {
					return err
				}
			}
		}
	}

	return nil
}
