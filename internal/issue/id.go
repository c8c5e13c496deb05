package issue

import "path/filepath"

// ID names one issue. It is the hash of the empty marker commit that
// created the issue, so it is unique within a repository by construction.
type ID string

// shortIDLen is the number of leading characters used for display. Short
// ids are not guaranteed unique; prefix resolution may report ambiguity.
const shortIDLen = 8

// Path returns the issue directory: root/issues/<id[0:2]>/<id[2:]>. The
// two-character shard prefix fans the directory tree out.
func (id ID) Path(root string) string {
	s := string(id)
	return filepath.Join(root, "issues", s[:2], s[2:])
}

// Short returns the first 8 characters of the id.
func (id ID) Short() string {
	return string(id)[:shortIDLen]
}

// Shard returns the two-character directory fan-out prefix.
func (id ID) Shard() string {
	return string(id)[:2]
}

func (id ID) String() string { return string(id) }

// idFromDir reassembles an id from an issue directory path, reversing Path.
func idFromDir(dir string) ID {
	shard := filepath.Base(filepath.Dir(dir))
	leaf := filepath.Base(dir)
	return ID(shard + leaf)
}
