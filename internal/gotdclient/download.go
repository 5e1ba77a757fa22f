package gotdclient

import (
	"context"
	"fmt"
	"io"

	"github.com/gotd/td/telegram/downloader"
	"github.com/gotd/td/tg"
)

// DownloadMedia streams the file behind a media attachment into target and
// returns the number of bytes written.
func (c *Client) DownloadMedia(
	ctx context.Context,
	media tg.MessageMediaClass,
	target io.Writer,
) (int64, error) {
	location, err := inputFileLocation(media)
	if err != nil {
		return 0, err
	}

	counter := &countingWriter{inner: target}
	if _, err := downloader.NewDownloader().Download(c.raw, location).Stream(ctx, counter); err != nil {
		return counter.written, fmt.Errorf("download media: %w", err)
	}

	return counter.written, nil
}

// inputFileLocation maps a media attachment to a downloadable file location.
// Photos download their largest size.
func inputFileLocation(media tg.MessageMediaClass) (tg.InputFileLocationClass, error) {
	switch value := media.(type) {
	case *tg.MessageMediaPhoto:
		photo, ok := value.Photo.(*tg.Photo)
		if !ok {
			return nil, fmt.Errorf("download media: photo unavailable")
		}

		return &tg.InputPhotoFileLocation{
			ID:            photo.ID,
			AccessHash:    photo.AccessHash,
			FileReference: photo.FileReference,
			ThumbSize:     largestPhotoSize(photo.Sizes),
		}, nil
	case *tg.MessageMediaDocument:
		document, ok := value.Document.(*tg.Document)
		if !ok {
			return nil, fmt.Errorf("download media: document unavailable")
		}

		return &tg.InputDocumentFileLocation{
			ID:            document.ID,
			AccessHash:    document.AccessHash,
			FileReference: document.FileReference,
		}, nil
	default:
		return nil, fmt.Errorf("download media: unsupported media %T", media)
	}
}

// largestPhotoSize picks the size type with the greatest pixel area.
func largestPhotoSize(sizes []tg.PhotoSizeClass) string {
	var (
		best     string
		bestArea int
	)
	for _, size := range sizes {
		switch value := size.(type) {
		case *tg.PhotoSize:
			if area := value.W * value.H; best == "" || area > bestArea {
				best = value.Type
				bestArea = area
			}
		case *tg.PhotoSizeProgressive:
			if area := value.W * value.H; best == "" || area > bestArea {
				best = value.Type
				bestArea = area
			}
		}
	}

	return best
}

type countingWriter struct {
	inner   io.Writer
	written int64
}

func (w *countingWriter) Write(p []byte) (int, error) {
	n, err := w.inner.Write(p)
	w.written += int64(n)

	return n, err
}
