package display

import (
	"io"

	"github.com/pterm/pterm"
)

// Table renders a two-column key/value table to w.
func Table(w io.Writer, header [2]string, rows [][2]string) error {
	data := pterm.TableData{{header[0], header[1]}}
	for _, r := range rows {
		data = append(data, []string{r[0], r[1]})
	}
	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out+"\n")
	return err
}
