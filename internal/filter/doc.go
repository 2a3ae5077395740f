// Package filter provides the Gaussian blur used by the blurring smudge mode.
//
// The blur is separable: a horizontal pass into a pooled float buffer
// followed by a vertical pass back into the device, giving
// O(w*h*(rx+ry)) work instead of O(w*h*rx*ry). Color channels are weighted
// by alpha so transparent pixels do not darken their neighbors.
package filter
