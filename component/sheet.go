package component

import "image"

type subImager interface {
	SubImage(r image.Rectangle) image.Image
}

// SheetFrames slices a sprite sheet into frames of frameW x frameH, laid out
// left-to-right, top-to-bottom. frameCount <= 0 reads every full frame on the
// sheet. Sheets that cannot be sliced yield nil.
func SheetFrames(sheet image.Image, frameW, frameH, frameCount int) []image.Image {
	if sheet == nil || frameW <= 0 || frameH <= 0 {
		return nil
	}
	sub, ok := sheet.(subImager)
	if !ok {
		return nil
	}

	bounds := sheet.Bounds()
	cols := bounds.Dx() / frameW
	rows := bounds.Dy() / frameH
	maxFrames := cols * rows
	if maxFrames == 0 {
		return nil
	}
	if frameCount <= 0 || frameCount > maxFrames {
		frameCount = maxFrames
	}

	frames := make([]image.Image, frameCount)
	for i := 0; i < frameCount; i++ {
		col := i % cols
		row := i / cols
		sx := bounds.Min.X + col*frameW
		sy := bounds.Min.Y + row*frameH
		frames[i] = sub.SubImage(image.Rect(sx, sy, sx+frameW, sy+frameH))
	}
	return frames
}
