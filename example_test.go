package gbsdata_test

import (
	"fmt"
	"log"
	"log/slog"

	"github.com/photonq/gbsdata"
)

// Example_load demonstrates loading a packaged dataset and reading samples.
func Example_load() {
	data, err := gbsdata.Planted()
	if err != nil {
		log.Fatal(err)
	}

	// Single samples, with negative indices counting from the end.
	sample, _ := data.Sample(3)
	last, _ := data.Sample(-1)

	fmt.Println(len(sample), len(last), data.NMean(), data.Threshold())
}

// Example_select demonstrates range selection.
func Example_select() {
	data, err := gbsdata.Planted()
	if err != nil {
		log.Fatal(err)
	}

	// The first ten samples.
	head, _ := data.Select(gbsdata.Span{}.To(10))

	// Every fifth sample, in reverse.
	strided, _ := data.Select(gbsdata.Span{}.By(-5))

	// An explicit window.
	window, _ := data.Select(gbsdata.Bounds{Start: 100, Stop: 200})

	fmt.Println(len(head), len(strided), len(window))
}

// Example_iterate demonstrates sample iteration and counting.
func Example_iterate() {
	data, err := gbsdata.Planted()
	if err != nil {
		log.Fatal(err)
	}

	// Total clicks per sample, computed by the dataset.
	counts, _ := data.Counts(gbsdata.AxisSamples)

	// The same totals, computed by walking the samples.
	for i, s := range data.Enumerate() {
		total := 0
		for _, v := range s {
			total += v
		}
		if total != counts[i] {
			log.Fatalf("count mismatch at %d", i)
		}
	}
}

// Example_molecule demonstrates the molecular parameters of a vibronic
// dataset.
func Example_molecule() {
	data, err := gbsdata.Formic()
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(data.Temperature())      // simulation temperature in kelvin
	fmt.Println(len(data.W()))           // vibrational modes
	fmt.Println(data.Duschinsky().At(0, 0))
}

// Example_registry demonstrates discovering the packaged datasets.
func Example_registry() {
	for _, desc := range gbsdata.List() {
		fmt.Println(desc.Name, desc.Kind, desc.NMean)
	}

	if desc, ok := gbsdata.Lookup("TACE-AS"); ok {
		data, err := gbsdata.LoadGraph(desc, gbsdata.WithLogger(
			gbsdata.NewTextLogger(slog.LevelDebug),
		))
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(data.Len())
	}
}
