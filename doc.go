// Package trapmap builds trapezoidal maps of non-crossing line segments and answers
// point location queries on them.
//
// A trapezoidal map decomposes a bounding box into trapezoids by shooting vertical
// rays up and down from every segment endpoint until they hit a segment. Together with
// the map, the construction builds a search structure, a directed acyclic graph whose
// leaves are the trapezoids and whose internal nodes compare a query point against a
// vertex's x coordinate or against a segment. Inserting the segments in random order
// gives an expected map size of O(n) and an expected query time of O(log n).
//
// # Building maps
//
// [Build] constructs the map of a list of points, taken pairwise as segment endpoints,
// in one go. [NewSession] and [Session.Insert] insert segments one at a time, in the
// order they are given. Both accept [Option] values for configuring randomness, the
// size of the bounding box, tracing and self-checking.
//
// Segments must not cross or overlap, and no two distinct endpoints may share an x
// coordinate. These preconditions are not checked by the construction; the input
// package provides a separate check.
//
// # Coordinates
//
// Map space is y-up. The orientation test [Orient] reports [Left] for points above a
// segment directed from left to right. All comparisons are exact; no tolerance is
// applied anywhere.
//
// # Tracing
//
// Every structural change of the map is recorded as an [Event], a self-contained value
// that can be serialized to JSON. The render package replays traces into pictures.
//
// # Literature
//
//   - [Computational Geometry: Algorithms and Applications], chapter 6
//   - [A simple and fast incremental randomized algorithm] by Raimund Seidel
//
// [Computational Geometry: Algorithms and Applications]: https://doi.org/10.1007/978-3-540-77974-2
// [A simple and fast incremental randomized algorithm]: https://doi.org/10.1016/0925-7721(91)90012-4
package trapmap
