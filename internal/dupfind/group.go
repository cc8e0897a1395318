package dupfind

import (
	"sort"
)

// grouper accumulates (record, fingerprint) pairs for one criterion pass.
// It is owned by a single goroutine; fingerprints map to member lists kept
// in first-seen order.
type grouper struct {
	criterion Criterion
	members   map[Fingerprint][]FileRecord
	order     []Fingerprint
}

func newGrouper(criterion Criterion) *grouper {
	return &grouper{
		criterion: criterion,
		members:   make(map[Fingerprint][]FileRecord),
	}
}

// add appends rec to the member list for fp.
func (g *grouper) add(rec FileRecord, fp Fingerprint) {
	if _, ok := g.members[fp]; !ok {
		g.order = append(g.order, fp)
	}

	g.members[fp] = append(g.members[fp], rec)
}

// finalize emits one group per fingerprint shared by at least two files and
// assembles the section summary. Single-member entries are unique files,
// not duplicates, and are dropped. Groups are sorted by descending wasted
// bytes; ties keep first-seen order.
func (g *grouper) finalize() Section {
	section := Section{Criterion: g.criterion}

	for _, fp := range g.order {
		members := g.members[fp]
		if len(members) < 2 {
			continue
		}

		group := DuplicateGroup{
			Criterion:   g.criterion,
			Key:         fp,
			Members:     members,
			WastedBytes: wastedBytes(g.criterion, members),
		}

		section.Groups = append(section.Groups, group)
		section.DuplicateCount += len(members) - 1
		section.WastedBytes += group.WastedBytes
	}

	sort.SliceStable(section.Groups, func(i, j int) bool {
		return section.Groups[i].WastedBytes > section.Groups[j].WastedBytes
	})

	return section
}

// wastedBytes is the space reclaimable by deleting all but one group
// member. Criteria whose members necessarily share one size reclaim (n-1)
// times that size; name and stem groups may mix sizes, so the largest
// member is the one assumed kept.
func wastedBytes(criterion Criterion, members []FileRecord) int64 {
	if criterion.SizeUniform() {
		return int64(len(members)-1) * members[0].Size
	}

	var total, largest int64

	for _, member := range members {
		total += member.Size
		if member.Size > largest {
			largest = member.Size
		}
	}

	return total - largest
}
