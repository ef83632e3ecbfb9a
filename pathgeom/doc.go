// Package pathgeom measures vector paths and samples them by arc length.
//
// A path is given in the 2D path mini-language used by SVG and the Canvas
// Path2D constructor (M, L, H, V, C, S, Q, T, A, Z and their relative
// lower-case forms), optionally with an affine transform. [Engine.Measure]
// turns it into a table of [PathSample] values ordered by cumulative
// length, each with the tangent direction at that point. [PointAtProgress]
// then resolves a normalized progress value to a position and direction.
//
// Length measurement is adaptive: Bézier segments are subdivided with de
// Casteljau's algorithm until a flatness tolerance is met, quadratics are
// raised to cubics first, and elliptical arcs are converted to center form
// and walked with a segment count that grows with their sweep and with the
// stretch of the transform.
//
// The same engine backs both direct measurement and the batched worker in
// package measure, so both report identical lengths.
package pathgeom
