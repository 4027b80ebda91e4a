package reader

import (
	"fmt"
	"io"

	"golang.org/x/text/encoding/htmlindex"
)

// charsetReader converts documents declared in a non UTF-8 encoding, such as
// <?xml version="1.0" encoding="ISO-8859-1"?>, so encoding/xml can read them.
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("unsupported charset %q: %w", label, err)
	}

	return enc.NewDecoder().Reader(input), nil
}
