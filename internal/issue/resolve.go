package issue

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// resolve maps a possibly-abbreviated needle to exactly one id out of ids.
// It is a pure function over an in-memory listing so the matching rules can
// be tested without a filesystem; ids must be sorted ascending.
//
//   - 1 character: with exactly one shard present the needle is replaced by
//     that shard's name and resolution recurses; otherwise every known
//     issue is a candidate and the ambiguity is reported with the full
//     list.
//   - 2 characters: exact shard name; zero leaves is not-found, one leaf
//     resolves, more is ambiguous.
//   - 3+ characters: an exact match against the listing short-circuits.
//     The needle is trusted as-is without a canonical-length check; known
//     upstream behavior, kept deliberately. Otherwise it is a prefix
//     search within the shard named by its first two characters.
func resolve(needle string, ids []ID) (ID, error) {
	switch len(needle) {
	case 0:
		return "", &NotFoundError{Needle: needle}
	case 1:
		shards := shardsOf(ids)
		if len(shards) == 1 {
			return resolve(shards[0], ids)
		}
		return "", &MultipleFoundError{Needle: needle, Candidates: ids}
	case 2:
		candidates := withPrefix(ids, needle)
		return pick(needle, candidates)
	default:
		for _, id := range ids {
			if string(id) == needle {
				return id, nil
			}
		}
		candidates := withPrefix(withPrefix(ids, needle[:2]), needle)
		return pick(needle, candidates)
	}
}

func pick(needle string, candidates []ID) (ID, error) {
	switch len(candidates) {
	case 0:
		return "", &NotFoundError{Needle: needle}
	case 1:
		return candidates[0], nil
	default:
		return "", &MultipleFoundError{Needle: needle, Candidates: candidates}
	}
}

func withPrefix(ids []ID, prefix string) []ID {
	var out []ID
	for _, id := range ids {
		if strings.HasPrefix(string(id), prefix) {
			out = append(out, id)
		}
	}
	return out
}

func shardsOf(ids []ID) []string {
	seen := make(map[string]struct{})
	var shards []string
	for _, id := range ids {
		s := id.Shard()
		if _, ok := seen[s]; !ok {
			seen[s] = struct{}{}
			shards = append(shards, s)
		}
	}
	sort.Strings(shards)
	return shards
}

// FindIssue resolves a user-supplied id or prefix to exactly one issue.
func (ds *DataSource) FindIssue(needle string) (ID, error) {
	ids, err := ds.ListIDs()
	if err != nil {
		return "", err
	}
	return resolve(needle, ids)
}

// ListIDs scans the issues directory and returns every issue id, sorted
// ascending. Linear directory scans are acceptable at the issue counts this
// tool targets.
func (ds *DataSource) ListIDs() ([]ID, error) {
	root := ds.issuesPath()
	shards, err := listDirs(root)
	if err != nil {
		return nil, err
	}
	var ids []ID
	for _, shard := range shards {
		leaves, err := listDirs(shard)
		if err != nil {
			return nil, err
		}
		for _, leaf := range leaves {
			ids = append(ids, idFromDir(leaf))
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// listDirs returns the sub-directories of path; a missing path yields an
// empty listing, matching "no issues yet".
func listDirs(path string) ([]string, error) {
	entries, err := os.ReadDir(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var dirs []string
	for _, entry := range entries {
		if entry.IsDir() {
			dirs = append(dirs, filepath.Join(path, entry.Name()))
		}
	}
	return dirs, nil
}
