package newsdesk

import "fmt"

// DimensionPrompt models the modal resize dialog. The host blocks the
// editing session while it is open and returns the chosen dimensions, or
// ok=false on cancel. It is pre-filled with the current width and height.
type DimensionPrompt interface {
	Dimensions(currentWidth, currentHeight int) (width, height int, ok bool)
}

// DimensionPromptFunc adapts a function to the DimensionPrompt interface.
type DimensionPromptFunc func(w, h int) (int, int, bool)

func (f DimensionPromptFunc) Dimensions(w, h int) (int, int, bool) { return f(w, h) }

// ImageEditor implements the image insertion and click-to-resize protocol
// on top of a document. The host UI owns the event loop and calls these
// operations from its own event handling; the editor never assumes
// anything about input sources beyond the positions and bytes it is given.
type ImageEditor struct {
	doc    *Document
	prompt DimensionPrompt

	// Stretch disables fit scaling so a confirm uses the dialog values
	// exactly. The default preserves the source aspect ratio.
	Stretch bool
}

// NewImageEditor returns an editor bound to doc that opens dialogs via
// prompt.
func NewImageEditor(doc *Document, prompt DimensionPrompt) *ImageEditor {
	return &ImageEditor{doc: doc, prompt: prompt}
}

// InsertFromBytes decodes data (from a file chooser or a drag-and-drop
// payload), asks the user for target dimensions pre-filled with the
// source's natural size, and inserts the resized image at the cursor.
// Cancelling the dialog leaves the document untouched.
func (e *ImageEditor) InsertFromBytes(data []byte) error {
	img, err := DecodeImage(data)
	if err != nil {
		return err
	}
	b := img.Bounds()
	w, h, ok := e.prompt.Dimensions(b.Dx(), b.Dy())
	if !ok {
		return nil
	}
	node, err := NewImageNode(ResizeImage(img, w, h, !e.Stretch))
	if err != nil {
		return err
	}
	return e.doc.InsertImage(node)
}

// ResolveAndEditAt resolves the block under pos and, if it is an image,
// runs the resize dialog and atomically replaces the node. This is the
// secondary-click path: a position that holds no image is a silent no-op,
// reported through the returned bool. The replacement node is fully
// constructed before the document is touched, so a decode or encode
// failure leaves the document unchanged.
func (e *ImageEditor) ResolveAndEditAt(pos int) (bool, error) {
	node, ok := e.doc.BlockAt(pos).(*ImageNode)
	if !ok {
		return false, nil
	}

	img, err := DecodeImage(node.Payload)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrImageProcessing, err)
	}
	w, h, confirmed := e.prompt.Dimensions(node.Width, node.Height)
	if !confirmed {
		return false, nil
	}
	replacement, err := NewImageNode(ResizeImage(img, w, h, !e.Stretch))
	if err != nil {
		return false, err
	}
	if err := e.doc.ReplaceImage(pos, replacement); err != nil {
		return false, err
	}
	return true, nil
}

// EditAt is the explicit edit action (e.g. a context-menu entry). Unlike
// ResolveAndEditAt it reports ErrNotAnImage when pos does not hold an
// image node.
func (e *ImageEditor) EditAt(pos int) error {
	if _, ok := e.doc.BlockAt(pos).(*ImageNode); !ok {
		return ErrNotAnImage
	}
	_, err := e.ResolveAndEditAt(pos)
	return err
}
