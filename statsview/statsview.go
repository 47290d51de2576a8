package statsview

import (
	"fmt"
	"io"
	"sync"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
)

const Address = "localhost:12600"
const url = "/debug/statsview"

var launched sync.Once

// URL returns the full address of the statistics page.
func URL() string {
	return fmt.Sprintf("http://%s%s", Address, url)
}

// Launch a new goroutine running the statsview. Subsequent calls to Launch()
// do nothing except write the address to the output.
func Launch(output io.Writer) {
	launched.Do(func() {
		go func() {
			viewer.SetConfiguration(viewer.WithAddr(Address))
			mgr := statsview.New()
			mgr.Start()
		}()
	})

	if output != nil {
		fmt.Fprintf(output, "stats server available at %s\n", URL())
	}
}
