package ui

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/qeesung/image2ascii/convert"
	"golang.org/x/term"
)

// TerminalCapabilities represents what the terminal can draw.
type TerminalCapabilities struct {
	Colored bool
}

// DetectTerminalCapabilities inspects stdout and the environment for color
// support.
func DetectTerminalCapabilities() TerminalCapabilities {
	_, noColor := os.LookupEnv("NO_COLOR")
	return TerminalCapabilities{
		Colored: !noColor && os.Getenv("TERM") != "dumb" && term.IsTerminal(int(os.Stdout.Fd())),
	}
}

// RenderPicture loads a PNG or JPEG and renders it as ASCII art that fits
// in width x height cells.
func RenderPicture(path string, caps TerminalCapabilities, width, height int) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open picture: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return "", fmt.Errorf("failed to decode picture: %w", err)
	}
	return convertToASCII(img, caps, width, height), nil
}

// expandHome replaces a leading "~/" with the user's home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

// convertToASCII converts an image to ASCII art.
func convertToASCII(img image.Image, caps TerminalCapabilities, targetWidth, targetHeight int) string {
	converter := convert.NewImageConverter()

	opts := convert.DefaultOptions
	opts.FixedWidth = targetWidth
	opts.FixedHeight = targetHeight
	opts.Colored = caps.Colored
	opts.Ratio = 0.5 // terminal cells are about twice as tall as wide

	return converter.Image2ASCIIString(img, &opts)
}
