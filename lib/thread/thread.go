/*package thread contains functions useful for multi-threading.*/
package thread

import (
	"runtime"

	"github.com/andrewcombs/WarpX/lib/error"
)

// Set sets the number of threads used by parallel loops. Passing -1 uses
// every core on the node.
func Set(n int) {
	if n == -1 { n = runtime.NumCPU() }
	if n < 1 || n > runtime.NumCPU() {
		error.External("%d threads requested, but your system has %d cores per node. If you want warpx-diag to use the maximum number of threads per node, set Threads = -1.", n, runtime.NumCPU())
	}

	runtime.GOMAXPROCS(n)
}
