// Package geo3d provides in-memory spatial indexes over three-dimensional
// shapes.
//
// Two index kinds are available. An R-tree (package index/rtree) stores
// bounding boxes of points, boxes, paths, polygons or spheres and answers
// the full operator table: positional operators per axis (<<, &<, &>, >>,
// <<|, &<|, |&>, |>>, <</, &</, /&>, />>), overlap (&&), containment (@>,
// <@), sameness (~=) and distance ordering (<->). A point octree (package
// index/octree) stores points only and answers the positional operators,
// containment in a box, sameness and distance ordering.
//
// # Quick Start
//
//	ctx := context.Background()
//	idx, _ := geo3d.NewRTree(geo3d.OpClassBox)
//	_ = idx.Insert(ctx, 1, geom.NewBox(geom.Pt(0, 0, 0), geom.Pt(1, 1, 1)))
//
//	hits, _ := idx.Search(ctx, geo3d.NewQuery(strategy.Overlap, geom.NewBox(geom.Pt(0.5, 0.5, 0.5), geom.Pt(2, 2, 2))))
//	fmt.Println(hits.All().ToArray())
//
//	nn, _ := idx.Nearest(ctx, geom.Pt(3, 3, 3), 5)
//
// The R-tree orders by the exact distance to any query shape, e.g. a
// segment; the octree orders by points only.
//
// Or with the fluent builders:
//
//	idx, _ := geo3d.Octree().LeafCapacity(16).Median().Build()
//
// # Lossy Matches
//
// Some keys only approximate their shape. A sphere is indexed by its
// bounding box, so a search can match ids whose exact shape does not
// satisfy the query. Such ids are returned in Hits.Recheck rather than
// Hits.Matches; callers recheck them against the stored shapes.
//
// # Observability
//
// WithLogger and WithMetricsCollector attach a structured slog logger and
// a metrics sink. BasicMetricsCollector keeps in-memory counters.
package geo3d
