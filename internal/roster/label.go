package roster

import (
	"strings"
)

// Default class criteria applied when a label fails to parse. Falling back
// instead of erroring is deliberate: the attendance sheet always renders a
// roster, even for a malformed label.
const (
	DefaultBranch = "CS"
	DefaultSem    = 6
	DefaultSec    = "A"
)

// Class option lists offered by the attendance sheet.
var (
	ClassOptions   = []string{"CS - 6A", "CS - 6B", "IS - 4A", "EC - 8C", "ME - 2A"}
	SubjectOptions = []string{"Web Technologies", "Data Structures", "Algorithms", "Operating Systems", "ML"}
)

// ParseClassLabel splits a "<branch> - <sem><sec>" label into filter
// criteria. Any malformed input (missing separator, no leading digit, empty
// segments) yields the CS/6/A default with ok=false.
func ParseClassLabel(label string) (branch string, sem int, sec string, ok bool) {
	branch, sem, sec = DefaultBranch, DefaultSem, DefaultSec

	parts := strings.SplitN(label, " - ", 2)
	if len(parts) != 2 {
		return branch, sem, sec, false
	}
	b := strings.TrimSpace(parts[0])
	group := strings.TrimSpace(parts[1])
	if b == "" || len(group) < 2 {
		return branch, sem, sec, false
	}
	if group[0] < '1' || group[0] > '9' {
		return branch, sem, sec, false
	}
	return b, int(group[0] - '0'), string(group[1]), true
}
