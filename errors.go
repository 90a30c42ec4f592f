package newsdesk

import "errors"

// Sentinel errors for document editing and publishing.
var (
	// ErrPublished is returned by any mutation attempted after a document
	// has been published. Publishing is one-way.
	ErrPublished = errors.New("document is already published")

	// ErrNotAnImage is returned by an explicit image-edit action when the
	// addressed block is not an image node.
	ErrNotAnImage = errors.New("block is not an image")

	// ErrUnreadableImage is returned when raw bytes cannot be decoded as a
	// supported raster format.
	ErrUnreadableImage = errors.New("unreadable image")

	// ErrImageProcessing is returned when an embedded image's payload fails
	// to decode or re-encode during an edit. The document is left unchanged.
	ErrImageProcessing = errors.New("image processing failed")

	// ErrValidation is returned when publish preconditions fail. The wrapped
	// message names the offending field(s); nothing is written.
	ErrValidation = errors.New("validation failed")

	// ErrStorage is returned when the file store cannot be written. The
	// wrapped message carries the path and underlying cause.
	ErrStorage = errors.New("storage failure")
)
