package bufreader

import "io"

const (
	// maxEmptyReads is how many consecutive (0, nil) reads are tolerated before giving up.
	maxEmptyReads   = 100
	defaultCapacity = 16 * 1024
)

// Reader batches reads from the underlying source into a fixed-capacity buffer, so many
// small logical reads (down to a single byte) cost a single physical one.
//
// Bytes left in the buffer are lost once the Reader is dropped. Never create more than a
// single Reader over the same source.
type Reader struct {
	src      io.Reader
	buff     []byte
	pos, cap int
	// err is an error returned by the source together with data. It's reported by the
	// next fill.
	err error
}

func New(src io.Reader, capacity int) *Reader {
	if capacity <= 0 {
		capacity = defaultCapacity
	}

	return &Reader{
		src:  src,
		buff: make([]byte, capacity),
	}
}

// Buffered returns currently buffered unread data without filling the buffer.
func (r *Reader) Buffered() []byte {
	return r.buff[r.pos:r.cap]
}

// Fill returns buffered unread data. If there's none, exactly one read from the source is
// made.
func (r *Reader) Fill() ([]byte, error) {
	if r.pos < r.cap {
		return r.buff[r.pos:r.cap], nil
	}

	if r.err != nil {
		err := r.err
		r.err = nil
		return nil, err
	}

	n, err := r.readSource(r.buff)
	r.pos, r.cap = 0, n
	if n > 0 {
		r.err = err
		return r.buff[:n], nil
	}

	return nil, err
}

// Consume marks n bytes as read. It never moves past the buffered data.
func (r *Reader) Consume(n int) {
	r.pos = min(r.pos+n, r.cap)
}

// Read implements io.Reader. When the buffer is empty and dst is at least as large as the
// buffer itself, the data is read directly into dst.
func (r *Reader) Read(dst []byte) (int, error) {
	if r.pos == r.cap && r.err == nil && len(dst) >= len(r.buff) {
		r.discard()
		return r.readSource(dst)
	}

	data, err := r.Fill()
	if len(data) == 0 {
		return 0, err
	}

	n := copy(dst, data)
	r.Consume(n)

	return n, nil
}

// ReadByte returns a single byte, io.EOF signals the end of the stream.
func (r *Reader) ReadByte() (byte, error) {
	data, err := r.Fill()
	if len(data) == 0 {
		return 0, err
	}

	r.Consume(1)
	return data[0], nil
}

func (r *Reader) discard() {
	r.pos, r.cap = 0, 0
}

func (r *Reader) readSource(b []byte) (n int, err error) {
	if len(b) == 0 {
		return 0, nil
	}

	for range maxEmptyReads {
		n, err = r.src.Read(b)
		if n > 0 || err != nil {
			return n, err
		}
	}

	return 0, io.ErrNoProgress
}
