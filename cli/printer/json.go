package printer

import (
	"encoding/json"
	"io"
)

// AsJson writes in as indented JSON. HTML characters are left unescaped so
// values such as dAPI names print verbatim.
func AsJson(w io.Writer, in interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(in)
}
