package align

import (
	"io"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/hts/bam"
	"github.com/grailbio/hts/bgzf/index"
	"github.com/grailbio/hts/sam"
)

// BAMProvider is the default Provider, backed by a coordinate-sorted,
// indexed .bam file. Both the BAM and its .bai are opened through
// grailbio/base/file, so a caller may point Path/IndexPath at an S3 URL as
// freely as a local path, exactly as bamprovider.BAMProvider does.
type BAMProvider struct {
	Path      string
	IndexPath string // defaults to Path+".bai" when empty.

	header *sam.Header
	idx    *bam.Index
	in     file.File
	reader *bam.Reader
}

func (p *BAMProvider) indexPath() string {
	if p.IndexPath != "" {
		return p.IndexPath
	}
	return p.Path + ".bai"
}

func (p *BAMProvider) open() error {
	if p.reader != nil {
		return nil
	}
	ctx := vcontext.Background()
	var err error
	if p.in, err = file.Open(ctx, p.Path); err != nil {
		return err
	}
	if p.reader, err = bam.NewReader(p.in.Reader(ctx), 1); err != nil {
		return err
	}
	p.header = p.reader.Header()

	idxFile, err := file.Open(ctx, p.indexPath())
	if err != nil {
		return err
	}
	defer idxFile.Close(ctx)
	if p.idx, err = bam.ReadIndex(idxFile.Reader(ctx)); err != nil {
		return err
	}
	return nil
}

// Header implements Provider.
func (p *BAMProvider) Header() (*sam.Header, error) {
	if err := p.open(); err != nil {
		return nil, err
	}
	return p.header, nil
}

// HasAlignments implements Provider by asking the index for any chunk
// covering the reference's full length.
func (p *BAMProvider) HasAlignments(refID int) (bool, error) {
	if err := p.open(); err != nil {
		return false, err
	}
	refs := p.header.Refs()
	if refID < 0 || refID >= len(refs) {
		return false, nil
	}
	ref := refs[refID]
	chunks, err := p.idx.Chunks(ref, 0, ref.Len())
	if err == index.ErrInvalid {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return len(chunks) > 0, nil
}

// RegionIterator implements Provider.
func (p *BAMProvider) RegionIterator(refID int, start, end int) Iterator {
	if err := p.open(); err != nil {
		return &errIterator{err: err}
	}
	refs := p.header.Refs()
	if refID < 0 || refID >= len(refs) {
		return &errIterator{err: io.EOF}
	}
	ref := refs[refID]

	chunks, err := p.idx.Chunks(ref, start, end)
	if err == index.ErrInvalid || len(chunks) == 0 {
		return &errIterator{err: nil} // empty region, not an error.
	}
	if err != nil {
		return &errIterator{err: err}
	}

	// A fresh bam.Reader per region iterator lets scanner workers run their
	// per-sample intervals sequentially without fighting over a shared seek
	// position; the underlying file handle is cheap to reopen locally, and
	// stays cheap over S3 because file.Open supports ranged reads.
	ctx := vcontext.Background()
	in, err := file.Open(ctx, p.Path)
	if err != nil {
		return &errIterator{err: err}
	}
	reader, err := bam.NewReader(in.Reader(ctx), 1)
	if err != nil {
		in.Close(ctx)
		return &errIterator{err: err}
	}
	if err := reader.Seek(chunks[0].Begin); err != nil {
		reader.Close()
		in.Close(ctx)
		return &errIterator{err: err}
	}
	return &bamIterator{
		in:       in,
		reader:   reader,
		refID:    int32(refID),
		startPos: int32(start),
		limitPos: int32(end),
	}
}

// Close implements Provider.
func (p *BAMProvider) Close() error {
	var err error
	if p.reader != nil {
		err = p.reader.Close()
		p.reader = nil
	}
	if p.in != nil {
		if cerr := p.in.Close(vcontext.Background()); err == nil {
			err = cerr
		}
	}
	return err
}

type bamIterator struct {
	in       file.File
	reader   *bam.Reader
	refID    int32
	startPos int32
	limitPos int32

	next *Record
	err  error
}

func (it *bamIterator) Scan() bool {
	if it.err != nil {
		return false
	}
	for {
		rec, err := it.reader.Read()
		if err != nil {
			if err != io.EOF {
				it.err = err
			}
			return false
		}
		if rec.Ref == nil || int32(rec.Ref.ID()) != it.refID {
			return false
		}
		if int32(rec.Pos) < it.startPos {
			continue
		}
		if int32(rec.Pos) >= it.limitPos {
			return false
		}
		it.next = rec
		return true
	}
}

func (it *bamIterator) Record() *Record { return it.next }
func (it *bamIterator) Err() error      { return it.err }

func (it *bamIterator) Close() error {
	err := it.reader.Close()
	if cerr := it.in.Close(vcontext.Background()); err == nil {
		err = cerr
	}
	return err
}

// errIterator is a zero-record iterator that reports a fixed error (or none,
// for a legitimately empty region).
type errIterator struct{ err error }

func (e *errIterator) Scan() bool      { return false }
func (e *errIterator) Record() *Record { return nil }
func (e *errIterator) Err() error      { return e.err }
func (e *errIterator) Close() error    { return nil }
