package newsdesk

import (
	"fmt"
	"image"
	"slices"
	"unicode/utf8"
)

// Alignment is a paragraph alignment attribute. Articles default to
// justified text, newspaper style.
type Alignment int

const (
	AlignJustify Alignment = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// CSS returns the text-align value for the alignment.
func (a Alignment) CSS() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return "justify"
	}
}

// TextFormat holds the character and paragraph attributes of a text run.
type TextFormat struct {
	Bold       bool
	Italic     bool
	Underline  bool
	FontFamily string
	PointSize  float64
	Alignment  Alignment
}

// DefaultTextFormat returns the editor's starting format.
func DefaultTextFormat() TextFormat {
	return TextFormat{FontFamily: "Arial", PointSize: 14, Alignment: AlignJustify}
}

// Block is one unit of document content: a formatted text run or an
// inline image node.
type Block interface {
	// length is the number of linear cursor positions the block occupies.
	length() int
}

// TextRun is a contiguous span of text sharing one format.
type TextRun struct {
	Text   string
	Format TextFormat
}

func (r *TextRun) length() int { return utf8.RuneCountInString(r.Text) }

// ImageNode is an inline image block. Identity is structural: two nodes
// with the same encoded form and dimensions are interchangeable. A resize
// always produces a new node; pointer identity never survives an edit.
type ImageNode struct {
	Payload []byte // PNG bytes, owned exclusively by this node
	Encoded string // base64 of Payload, cached
	Width   int    // display pixels, matches the raster
	Height  int
}

// Like all blocks representing a single object, an image occupies exactly
// one cursor position.
func (n *ImageNode) length() int { return 1 }

// DataURI returns the node's inline representation for HTML embedding.
func (n *ImageNode) DataURI() string { return dataURIStart + n.Encoded }

// Same reports structural equality with other.
func (n *ImageNode) Same(other *ImageNode) bool {
	return other != nil && n.Encoded == other.Encoded &&
		n.Width == other.Width && n.Height == other.Height
}

// NewImageNode encodes img and wraps it as an image node whose dimensions
// match the raster.
func NewImageNode(img image.Image) (*ImageNode, error) {
	payload, encoded, err := EncodeImage(img)
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	return &ImageNode{
		Payload: payload,
		Encoded: encoded,
		Width:   b.Dx(),
		Height:  b.Dy(),
	}, nil
}

// Document is an ordered sequence of blocks with a linear cursor. Block
// order is the only sequencing signal. A document starts in draft state
// and becomes immutable once published.
type Document struct {
	blocks    []Block
	cursor    int
	published bool
}

// NewDocument returns an empty draft document.
func NewDocument() *Document {
	return &Document{}
}

// Len returns the total number of cursor positions in the document.
func (d *Document) Len() int {
	n := 0
	for _, b := range d.blocks {
		n += b.length()
	}
	return n
}

// Cursor returns the current insertion position.
func (d *Document) Cursor() int { return d.cursor }

// SetCursor moves the insertion position. Valid positions run from 0 to
// Len() inclusive.
func (d *Document) SetCursor(pos int) error {
	if pos < 0 || pos > d.Len() {
		return fmt.Errorf("cursor position %d out of range [0, %d]", pos, d.Len())
	}
	d.cursor = pos
	return nil
}

// Published reports whether the document has been published.
func (d *Document) Published() bool { return d.published }

// MarkPublished transitions the document to its terminal published state.
// There is no way back to draft.
func (d *Document) MarkPublished() error {
	if d.published {
		return ErrPublished
	}
	d.published = true
	return nil
}

func (d *Document) checkDraft() error {
	if d.published {
		return ErrPublished
	}
	return nil
}

// locate finds the block containing pos. A position at a block boundary
// belongs to the following block, matching text-cursor semantics. The
// returned start is the block's first position. When pos == Len(), idx is
// len(d.blocks) and there is no containing block.
func (d *Document) locate(pos int) (idx, start int) {
	off := 0
	for i, b := range d.blocks {
		if pos < off+b.length() {
			return i, off
		}
		off += b.length()
	}
	return len(d.blocks), off
}

// splitAt ensures a block boundary exists at pos and returns the index of
// the block starting there.
func (d *Document) splitAt(pos int) int {
	idx, start := d.locate(pos)
	if idx == len(d.blocks) || pos == start {
		return idx
	}
	run := d.blocks[idx].(*TextRun) // only text runs span multiple positions
	at := pos - start
	left := &TextRun{Text: string([]rune(run.Text)[:at]), Format: run.Format}
	right := &TextRun{Text: string([]rune(run.Text)[at:]), Format: run.Format}
	d.blocks[idx] = left
	d.blocks = slices.Insert(d.blocks, idx+1, Block(right))
	return idx + 1
}

// InsertText inserts text at the cursor with the given format. Adjacent
// runs with an identical format are merged.
func (d *Document) InsertText(text string, format TextFormat) error {
	if err := d.checkDraft(); err != nil {
		return err
	}
	if text == "" {
		return nil
	}
	idx := d.splitAt(d.cursor)
	if idx > 0 {
		if run, ok := d.blocks[idx-1].(*TextRun); ok && run.Format == format {
			run.Text += text
			d.cursor += utf8.RuneCountInString(text)
			return nil
		}
	}
	d.blocks = slices.Insert(d.blocks, idx, Block(&TextRun{Text: text, Format: format}))
	d.cursor += utf8.RuneCountInString(text)
	return nil
}

// InsertImage inserts node at the cursor as its own block.
func (d *Document) InsertImage(node *ImageNode) error {
	if err := d.checkDraft(); err != nil {
		return err
	}
	if node == nil || node.Width < 1 || node.Height < 1 {
		return fmt.Errorf("%w: image node requires positive dimensions", ErrImageProcessing)
	}
	idx := d.splitAt(d.cursor)
	d.blocks = slices.Insert(d.blocks, idx, Block(node))
	d.cursor++
	return nil
}

// BlockAt returns the block occupying pos, or nil when pos is past the end
// of the document. A position exactly between two blocks resolves to the
// following block.
func (d *Document) BlockAt(pos int) Block {
	if pos < 0 {
		return nil
	}
	idx, _ := d.locate(pos)
	if idx == len(d.blocks) {
		return nil
	}
	return d.blocks[idx]
}

// ReplaceImage swaps the image node at pos for replacement as a single
// logical edit: one block out, one block in, same slot.
func (d *Document) ReplaceImage(pos int, replacement *ImageNode) error {
	if err := d.checkDraft(); err != nil {
		return err
	}
	if replacement == nil || replacement.Width < 1 || replacement.Height < 1 {
		return fmt.Errorf("%w: replacement requires positive dimensions", ErrImageProcessing)
	}
	idx, _ := d.locate(pos)
	if idx == len(d.blocks) {
		return ErrNotAnImage
	}
	if _, ok := d.blocks[idx].(*ImageNode); !ok {
		return ErrNotAnImage
	}
	d.blocks[idx] = replacement
	return nil
}

// SetFormat applies mutate to the format of every text run overlapping
// [start, end). Runs straddling a boundary are split first; image nodes
// are unaffected.
func (d *Document) SetFormat(start, end int, mutate func(*TextFormat)) error {
	if err := d.checkDraft(); err != nil {
		return err
	}
	if start < 0 || end > d.Len() || start > end {
		return fmt.Errorf("format range [%d, %d) out of bounds", start, end)
	}
	if start == end {
		return nil
	}
	first := d.splitAt(start)
	last := d.splitAt(end)
	for i := first; i < last; i++ {
		if run, ok := d.blocks[i].(*TextRun); ok {
			mutate(&run.Format)
		}
	}
	d.normalize()
	return nil
}

// SetAlignment sets the paragraph alignment over [start, end).
func (d *Document) SetAlignment(start, end int, a Alignment) error {
	return d.SetFormat(start, end, func(f *TextFormat) { f.Alignment = a })
}

// normalize merges adjacent runs with identical formats and drops empty
// runs so that splits from range edits do not accumulate.
func (d *Document) normalize() {
	out := d.blocks[:0]
	for _, b := range d.blocks {
		if run, ok := b.(*TextRun); ok {
			if run.Text == "" {
				continue
			}
			if len(out) > 0 {
				if prev, ok := out[len(out)-1].(*TextRun); ok && prev.Format == run.Format {
					prev.Text += run.Text
					continue
				}
			}
		}
		out = append(out, b)
	}
	d.blocks = out
}

// PlainText concatenates all text runs in block order. Images contribute
// nothing.
func (d *Document) PlainText() string {
	var out []byte
	for _, b := range d.blocks {
		if run, ok := b.(*TextRun); ok {
			out = append(out, run.Text...)
		}
	}
	return string(out)
}

// Blocks returns a read-only snapshot of the block sequence.
func (d *Document) Blocks() []Block {
	return slices.Clone(d.blocks)
}

// FirstImage returns the lead image: the first image node in block order,
// or nil when the document has none.
func (d *Document) FirstImage() *ImageNode {
	for _, b := range d.blocks {
		if node, ok := b.(*ImageNode); ok {
			return node
		}
	}
	return nil
}
