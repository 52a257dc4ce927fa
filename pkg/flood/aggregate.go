package flood

import (
	"github.com/vertex-lab/pathflood/pkg/models"
	"github.com/vertex-lab/pathflood/pkg/utils/sliceutils"
)

// ResultSet is the multiset of the replies collected by one search.
// Equal paths received more than once are kept as separate entries.
type ResultSet []models.PathRecord

// MinWeight() returns the minimum weight in the set, and false if the set is empty.
func (rs ResultSet) MinWeight() (int, bool) {
	if len(rs) == 0 {
		return 0, false
	}

	minWeight := rs[0].Weight
	for _, path := range rs[1:] {
		if path.Weight < minWeight {
			minWeight = path.Weight
		}
	}
	return minWeight, true
}

// Winners() returns every path whose weight equals the minimum weight, sorted by
// their visited sequence. Ties are all kept. The set itself is not modified.
func (rs ResultSet) Winners() []models.PathRecord {
	minWeight, ok := rs.MinWeight()
	if !ok {
		return nil
	}

	winners := make([]models.PathRecord, 0, 1)
	for _, path := range rs {
		if path.Weight == minWeight {
			winners = append(winners, path)
		}
	}

	return sliceutils.SortPaths(winners)
}
