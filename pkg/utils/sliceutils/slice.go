package sliceutils

import (
	"sort"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/vertex-lab/pathflood/pkg/models"
)

// HasDuplicates() returns whether some element appears more than once in the slice.
// A visited sequence with duplicates contains a cycle.
func HasDuplicates(slice []string) bool {
	set := mapset.NewThreadUnsafeSetWithSize[string](len(slice))
	for _, el := range slice {
		if !set.Add(el) {
			return true
		}
	}
	return false
}

/*
ComparePaths() compares the visited sequences of the two paths lexicographically.
It returns -1 if p1 comes before p2, +1 if p1 comes after p2, and 0 if they are equal.
A sequence that is a prefix of the other comes first.
*/
func ComparePaths(p1, p2 models.PathRecord) int {
	for x := 0; x < len(p1.Visited) && x < len(p2.Visited); x++ {
		if p1.Visited[x] < p2.Visited[x] {
			return -1
		} else if p1.Visited[x] > p2.Visited[x] {
			return 1
		}
	}

	switch {
	case len(p1.Visited) < len(p2.Visited):
		return -1
	case len(p1.Visited) > len(p2.Visited):
		return 1
	default:
		return 0
	}
}

// SortPaths() sorts the paths lexicographically by their visited sequence, in place.
func SortPaths(paths []models.PathRecord) []models.PathRecord {
	sort.SliceStable(paths, func(i, j int) bool {
		return ComparePaths(paths[i], paths[j]) < 0
	})

	return paths
}
