// Package frame provides the frame-acquisition collaborators around the
// detection core: the FrameSource abstraction, a file-backed source for
// offline and test use, pixel color sampling, and a debug overlay that
// renders detected corners onto a frame.
//
// Camera/device acquisition is deliberately outside this module; anything
// that can hand the engine an image.Image per cycle satisfies Source.
package frame
