// Package recommend is the destination matching and ranking engine.
//
// Score rates one destination against one preference set; Recommender runs
// it over a catalog snapshot, drops non-matches, ranks the rest with a
// stable sort and builds display records. Nothing here performs I/O.
package recommend
