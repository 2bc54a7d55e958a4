// Command vebmapbench builds a VebMap over a generated key range and
// reports timings for Put, Successor and Delete sweeps. It exists to give
// a rough feel for how index size affects the O(log log U) operations in
// practice; it is not a substitute for go test -bench.
package main

import (
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/db47h/vebmap"
	"github.com/db47h/vebmap/veb"
)

func main() {
	n := flag.Int("n", 100000, "number of keys to insert")
	seed := flag.Uint64("seed", 1, "PRNG seed for the successor sweep")
	flag.Parse()

	if *n <= 0 {
		fmt.Fprintln(os.Stderr, "vebmapbench: -n must be positive")
		os.Exit(2)
	}

	m, err := vebmap.New[int64](uint(*n), veb.ByMax)
	if err != nil {
		fmt.Fprintf(os.Stderr, "vebmapbench: %v\n", err)
		os.Exit(1)
	}

	start := time.Now()
	for i := 0; i < *n; i++ {
		m, err = m.Put(uint(i), int64(i))
		if err != nil {
			fmt.Fprintf(os.Stderr, "vebmapbench: put: %v\n", err)
			os.Exit(1)
		}
	}
	putElapsed := time.Since(start)

	rng := rand.New(rand.NewPCG(*seed, *seed>>32|1))
	start = time.Now()
	var hits int
	for i := 0; i < *n; i++ {
		if _, ok := m.SuccKey(uint(rng.IntN(*n))); ok {
			hits++
		}
	}
	succElapsed := time.Since(start)

	start = time.Now()
	for i := 0; i < *n; i += 2 {
		m = m.Delete(uint(i))
	}
	deleteElapsed := time.Since(start)

	fmt.Printf("keys=%d capacity=%d\n", *n, m.Capacity())
	fmt.Printf("put:       %v total, %v/op\n", putElapsed, putElapsed/time.Duration(*n))
	fmt.Printf("successor: %v total, %v/op (%d/%d resolved)\n", succElapsed, succElapsed/time.Duration(*n), hits, *n)
	fmt.Printf("delete:    %v total, %v/op\n", deleteElapsed, deleteElapsed/time.Duration((*n+1)/2))
}
