package playback

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrMalformedRange     = errors.New("malformed range header")
	ErrUnsatisfiableRange = errors.New("requested range not satisfiable")
)

// ByteRange is an inclusive byte interval within a file of known size.
type ByteRange struct {
	Start int64
	End   int64
}

func (br ByteRange) Length() int64 {
	return br.End - br.Start + 1
}

func (br ByteRange) ContentRange(total int64) string {
	return fmt.Sprintf("bytes %d-%d/%d", br.Start, br.End, total)
}

// ParseRange interprets a Range request header against a file of the given
// size. A nil range with a nil error means the client did not ask for a
// range. Only the first range of a multi-range request is honored, which is
// what browser video elements send in practice.
func ParseRange(header string, size int64) (*ByteRange, error) {
	if header == "" {
		return nil, nil
	}

	spec, ok := strings.CutPrefix(header, "bytes=")
	if !ok {
		return nil, ErrMalformedRange
	}

	if first, _, found := strings.Cut(spec, ","); found {
		spec = strings.TrimSpace(first)
	}

	startPart, endPart, found := strings.Cut(spec, "-")
	if !found {
		return nil, ErrMalformedRange
	}

	var start, end int64

	if startPart == "" {
		// Suffix form: the final N bytes of the file.
		suffix, err := strconv.ParseInt(endPart, 10, 64)
		if err != nil || suffix <= 0 {
			return nil, ErrMalformedRange
		}
		start = size - suffix
		if start < 0 {
			start = 0
		}
		end = size - 1
	} else {
		var err error
		start, err = strconv.ParseInt(startPart, 10, 64)
		if err != nil || start < 0 {
			return nil, ErrMalformedRange
		}

		if endPart == "" {
			end = size - 1
		} else {
			end, err = strconv.ParseInt(endPart, 10, 64)
			if err != nil {
				return nil, ErrMalformedRange
			}
		}
	}

	if start > end || start >= size {
		return nil, ErrUnsatisfiableRange
	}

	if end >= size {
		end = size - 1
	}

	return &ByteRange{Start: start, End: end}, nil
}
