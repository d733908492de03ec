package client

import "io"

// A ProgressFunc observes the cumulative number of bytes consumed for a
// file. written is capped at total; written == total signals completion.
type ProgressFunc func(name string, written, total int64)

// progressReader wraps the chunked read of one file so that each
// consumed chunk triggers the observer with cumulative bytes.
type progressReader struct {
	r        io.Reader
	name     string
	total    int64
	written  int64
	observer ProgressFunc
	done     bool
}

func newProgressReader(r io.Reader, name string, total int64, observer ProgressFunc) io.Reader {
	if observer == nil {
		return r
	}

	return &progressReader{
		r:        r,
		name:     name,
		total:    total,
		observer: observer,
	}
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.written += int64(n)
		if p.written > p.total {
			p.written = p.total
		}
		p.observer(p.name, p.written, p.total)
	}

	if err == io.EOF && !p.done {
		p.done = true
		p.observer(p.name, p.total, p.total)
	}
	return n, err
}
