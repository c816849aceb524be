package misassembly_test

import (
	"context"
	"fmt"

	"github.com/logsdon-lab/misasim/edit"
	"github.com/logsdon-lab/misasim/misassembly"
	"github.com/logsdon-lab/misasim/sampler"
	"github.com/logsdon-lab/misasim/track"
)

// ExampleEngine_Run inverts a whole sequence and prints the annotation.
func ExampleEngine_Run() {
	seqs := []track.Sequence{{ID: "chr1", Bases: []byte("AACC")}}
	batch := []misassembly.Request{
		{Kind: edit.Inversion, Count: 1, Length: sampler.Fixed(4)},
	}

	rep, err := misassembly.New(misassembly.WithSeed(42)).Run(context.Background(), seqs, batch)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	f, _ := rep.Results[0].Result.Single()
	fmt.Println(string(f.Bases))
	for _, r := range f.Rows {
		fmt.Println(r)
	}
	// Output:
	// GGTT
	// chr1 orig[0,4) inversion new[0,4)
}
