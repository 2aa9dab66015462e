// Package annotate renders detection boxes onto the uploaded image. It works
// on decoded pixels directly so annotation is available in every build, with
// or without OpenCV.
package annotate

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	_ "image/png"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"infrawatch/internal/detector"
	"infrawatch/internal/models"
)

const (
	boxThickness = 2
	jpegQuality  = 90
)

var severityColors = map[models.Severity]color.RGBA{
	models.SeverityHigh:   {R: 220, G: 53, B: 69, A: 255},
	models.SeverityMedium: {R: 255, G: 165, B: 0, A: 255},
	models.SeverityLow:    {R: 40, G: 167, B: 69, A: 255},
}

// Render decodes a JPEG/PNG image, draws one severity-colored box and label
// per detection and returns the result encoded as JPEG.
func Render(imageData []byte, detections []detector.Detection) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	canvas := image.NewRGBA(src.Bounds())
	draw.Draw(canvas, canvas.Bounds(), src, src.Bounds().Min, draw.Src)

	for _, det := range detections {
		col := severityColors[models.SeverityFor(det.Confidence)]
		box := det.Bounds.Intersect(canvas.Bounds())
		if box.Empty() {
			continue
		}

		drawRect(canvas, box, col)
		drawLabel(canvas, box, fmt.Sprintf("%s (%.2f)", det.ClassName, det.Confidence), col)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, canvas, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode annotated image: %w", err)
	}
	return buf.Bytes(), nil
}

// drawRect draws an unfilled rectangle outline.
func drawRect(img *image.RGBA, r image.Rectangle, col color.RGBA) {
	edges := []image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+boxThickness), // top
		image.Rect(r.Min.X, r.Max.Y-boxThickness, r.Max.X, r.Max.Y), // bottom
		image.Rect(r.Min.X, r.Min.Y, r.Min.X+boxThickness, r.Max.Y), // left
		image.Rect(r.Max.X-boxThickness, r.Min.Y, r.Max.X, r.Max.Y), // right
	}
	src := &image.Uniform{C: col}
	for _, edge := range edges {
		draw.Draw(img, edge.Intersect(img.Bounds()), src, image.Point{}, draw.Src)
	}
}

// drawLabel writes the label just above the box, or inside it when the box
// touches the top of the image.
func drawLabel(img *image.RGBA, box image.Rectangle, label string, col color.RGBA) {
	face := basicfont.Face7x13

	y := box.Min.Y - 4
	if y < face.Height {
		y = box.Min.Y + face.Height + 2
	}

	drawer := &font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{C: col},
		Face: face,
		Dot:  fixed.P(box.Min.X, y),
	}
	drawer.DrawString(label)
}
