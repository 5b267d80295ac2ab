package basket

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrNoPath indicates a FileSource was constructed with an empty path.
var ErrNoPath = errors.New("basket: file source requires a non-empty path")

// maxLineBytes bounds a single basket line; lines beyond this fail the scan.
const maxLineBytes = 1 << 20

// Basket is one transaction: the item tokens of a single input line,
// in line order. A Basket may be empty.
type Basket []string

// Source produces a restartable sequence of baskets. Every Open call
// starts a fresh pass from the first basket.
type Source interface {
	Open(ctx context.Context) (Cursor, error)
}

// Cursor iterates one pass over a Source. Next returns the next basket and
// true, or (nil, false, nil) at the end of the pass, or a non-nil error on
// read failure. Close releases the underlying resources.
type Cursor interface {
	Next() (Basket, bool, error)
	Close() error
}

// FileSource reads baskets from a whitespace-tokenized text file,
// one basket per line.
type FileSource struct {
	path string
}

// NewFileSource builds a FileSource for path.
// Returns ErrNoPath if path is empty; the file itself is opened lazily.
func NewFileSource(path string) (*FileSource, error) {
	if path == "" {
		return nil, ErrNoPath
	}
	return &FileSource{path: path}, nil
}

// Path reports the file the source reads from.
func (s *FileSource) Path() string { return s.path }

// Open starts a new pass over the file.
func (s *FileSource) Open(ctx context.Context) (Cursor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("basket: open %s: %w", s.path, err)
	}
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	return &fileCursor{ctx: ctx, path: s.path, f: f, sc: sc}, nil
}

type fileCursor struct {
	ctx  context.Context
	path string
	f    *os.File
	sc   *bufio.Scanner
}

func (c *fileCursor) Next() (Basket, bool, error) {
	if err := c.ctx.Err(); err != nil {
		return nil, false, err
	}
	if !c.sc.Scan() {
		if err := c.sc.Err(); err != nil {
			return nil, false, fmt.Errorf("basket: read %s: %w", c.path, err)
		}
		return nil, false, nil
	}
	return Basket(strings.Fields(c.sc.Text())), true, nil
}

func (c *fileCursor) Close() error { return c.f.Close() }

// SliceSource serves a fixed slice of baskets from memory.
type SliceSource [][]string

// Open starts a new pass over the slice.
func (s SliceSource) Open(ctx context.Context) (Cursor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &sliceCursor{ctx: ctx, baskets: s}, nil
}

type sliceCursor struct {
	ctx     context.Context
	baskets [][]string
	pos     int
}

func (c *sliceCursor) Next() (Basket, bool, error) {
	if err := c.ctx.Err(); err != nil {
		return nil, false, err
	}
	if c.pos >= len(c.baskets) {
		return nil, false, nil
	}
	b := c.baskets[c.pos]
	c.pos++
	return Basket(b), true, nil
}

func (c *sliceCursor) Close() error { return nil }

// ForEach runs one full pass over src, calling fn for every basket in order.
// The cursor is always closed; the first error from the source or fn aborts
// the pass.
func ForEach(ctx context.Context, src Source, fn func(Basket) error) error {
	cur, err := src.Open(ctx)
	if err != nil {
		return err
	}
	defer cur.Close()

	for {
		b, ok, err := cur.Next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err = fn(b); err != nil {
			return err
		}
	}
}
