package parse

import (
	"errors"
	"regexp"
	"strings"

	"github.com/Veraticus/daily-problems/internal/common"
)

// LeadIns are the sentences that open a problem statement, in priority order.
var LeadIns = []string{
	"This problem was recently asked by ",
	"This problem was asked by ",
	"This problem was asked ",
	"This question was asked by ",
	"Good morning! Here's your coding interview problem for today.",
}

// Delimiter separates the statement from the footer of the email.
var Delimiter = strings.Repeat("-", 80)

var (
	errNoLeadIn    = errors.New("start string not found in email body")
	errNoDelimiter = errors.New("delimiter not found in email body")
	errNoStatement = errors.New("nothing follows the lead-in line")
)

var askedByPattern = regexp.MustCompile(`^This (?:problem|question) was (?:recently )?asked by (.+?)\.?$`)

// ExtractBody returns the problem statement from a plain-text email body.
// The start is the first entry of LeadIns present anywhere in the body, not
// the earliest occurrence among all of them.
func ExtractBody(body string) (string, error) {
	start := -1
	for _, leadIn := range LeadIns {
		if idx := strings.Index(body, leadIn); idx >= 0 {
			start = idx
			break
		}
	}
	if start < 0 {
		return "", common.NewRecoverable(common.KindExtraction, "", errNoLeadIn)
	}

	stop := strings.Index(body[start:], Delimiter)
	if stop < 0 {
		return "", common.NewRecoverable(common.KindExtraction, "", errNoDelimiter)
	}

	return strings.TrimSpace(body[start : start+stop]), nil
}

// StripLeadIn splits an extracted statement into its lead-in line and the
// remaining problem text.
func StripLeadIn(statement string) (leadIn, problem string, err error) {
	first, rest, found := strings.Cut(statement, "\n")
	rest = strings.TrimSpace(rest)
	if !found || rest == "" {
		return "", "", common.NewRecoverable(common.KindExtraction, "", errNoStatement)
	}
	return strings.TrimSpace(first), rest, nil
}

// CompanyFromLeadIn returns the company named in a lead-in line such as
// "This problem was asked by Google.".
func CompanyFromLeadIn(leadIn string) (string, bool) {
	match := askedByPattern.FindStringSubmatch(strings.TrimSpace(leadIn))
	if match == nil {
		return "", false
	}
	company := strings.TrimSpace(match[1])
	return company, company != ""
}
