package geo3d_test

import (
	"context"
	"fmt"
	"log"

	"github.com/hupe1980/geo3d"
	"github.com/hupe1980/geo3d/codec"
	"github.com/hupe1980/geo3d/geom"
	"github.com/hupe1980/geo3d/strategy"
)

// Example_rtree demonstrates box search and nearest-neighbor scans on an R-tree.
func Example_rtree() {
	ctx := context.Background()

	idx, err := geo3d.RTree(geo3d.OpClassBox).MaxEntries(8).Build()
	if err != nil {
		log.Fatal(err)
	}
	defer idx.Close()

	for i := 0; i < 10; i++ {
		x := float64(i)
		if err := idx.Insert(ctx, uint32(i), geom.NewBox(geom.Pt(x, 0, 0), geom.Pt(x+0.5, 1, 1))); err != nil {
			log.Fatal(err)
		}
	}

	hits, err := idx.Search(ctx, geo3d.NewQuery(strategy.Overlap, geom.NewBox(geom.Pt(2.2, 0, 0), geom.Pt(4.2, 1, 1))))
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("overlap:", hits.Matches.ToArray())

	nn, err := idx.Nearest(ctx, geom.Pt(9, 0.5, 0.5), 2)
	if err != nil {
		log.Fatal(err)
	}
	for _, n := range nn {
		fmt.Printf("id=%d distance=%.1f\n", n.ID, n.Distance)
	}

	// Output:
	// overlap: [2 3 4]
	// id=9 distance=0.0
	// id=8 distance=0.5
}

// Example_octreeJSON demonstrates decoding JSON queries for a point octree.
func Example_octreeJSON() {
	ctx := context.Background()

	idx, err := geo3d.NewOctree(geo3d.WithLeafCapacity(4))
	if err != nil {
		log.Fatal(err)
	}
	defer idx.Close()

	var items []geo3d.Item
	for i := 0; i < 27; i++ {
		items = append(items, geo3d.Item{ID: uint32(i), Shape: geom.Pt(float64(i%3), float64(i/3%3), float64(i/9))})
	}
	if err := idx.Build(ctx, items); err != nil {
		log.Fatal(err)
	}

	queries, err := codec.UnmarshalQueries(nil, []byte(`[
		{"op":"<@","shape":{"kind":"box3D","points":[[0,0,0],[2,2,2]]}},
		{"op":"|>>","shape":{"kind":"point3D","points":[[0,1,0]]}},
		{"op":"<</","shape":{"kind":"point3D","points":[[0,0,1]]}}
	]`))
	if err != nil {
		log.Fatal(err)
	}

	hits, err := idx.Search(ctx, queries...)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(hits.All().ToArray())

	// Output:
	// [6 7 8]
}
