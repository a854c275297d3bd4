//go:build !gocv

package contour

import "errors"

// NewGoCVSource reports that this binary was built without OpenCV support.
// Build with -tags gocv (and the native library installed) to enable it.
func NewGoCVSource() (Source, error) {
	return nil, errors.New("contour: built without gocv support")
}
