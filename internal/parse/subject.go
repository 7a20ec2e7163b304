package parse

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/Veraticus/daily-problems/internal/common"
)

// SubjectMarker must appear in every subject returned by the mailbox search.
const SubjectMarker = "Daily Coding Problem"

// SearchSubject is the subject substring used to find problem emails.
const SearchSubject = "Daily Coding Problem: Problem #"

var problemNumberPattern = regexp.MustCompile(`Problem #(\d+)`)

// ProblemID extracts the first run of digits following "Problem #".
func ProblemID(subject string) (int, error) {
	match := problemNumberPattern.FindStringSubmatch(subject)
	if match == nil {
		return 0, common.NewRecoverable(common.KindParse, subject, nil)
	}

	id, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, common.NewRecoverable(common.KindParse, subject, err)
	}
	return id, nil
}

// HasMarker reports whether subject looks like a problem email at all.
func HasMarker(subject string) bool {
	return strings.Contains(subject, SubjectMarker)
}
