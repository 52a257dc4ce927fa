package flood

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/vertex-lab/pathflood/pkg/models"
)

// Result is the outcome of a search, computed when the collection window expires.
type Result struct {
	Origin   string
	Target   string
	SearchID string

	// the paths with the minimum weight. Empty when nothing was found.
	Winners []models.PathRecord

	// the number of replies collected during the window, duplicates included
	Collected int

	// the collection window of the search. Zero for a self-search.
	Window time.Duration
}

// Found() returns whether at least one path reached the target.
func (r *Result) Found() bool {
	return r != nil && len(r.Winners) > 0
}

// Weight() returns the weight of the winning paths, or -1 if nothing was found.
func (r *Result) Weight() int {
	if !r.Found() {
		return -1
	}
	return r.Winners[0].Weight
}

// Report() writes a human readable line for every winning path, or a line saying
// that the target wasn't found.
func (r *Result) Report(w io.Writer) error {
	if !r.Found() {
		_, err := fmt.Fprintf(w, "No path from node %s to node %s was found within %v (%d replies).\n",
			r.Origin, r.Target, r.Window, r.Collected)
		return err
	}

	for _, path := range r.Winners {
		_, err := fmt.Fprintf(w, "Shortest path from node %s to node %s is [%s], its length is %d.\n",
			path.Origin(), path.Target, strings.Join(path.Visited, " "), path.Weight)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *Result) String() string {
	var b strings.Builder
	r.Report(&b)
	return b.String()
}
