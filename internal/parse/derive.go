package parse

import "github.com/Veraticus/daily-problems/internal/model"

// Derived is what the pipeline needs from one mail item.
type Derived struct {
	Statement string
	ID        int
}

// Derive parses the problem number from the subject, then extracts the
// statement from the body. The returned error is recoverable.
func Derive(item model.MailItem) (Derived, error) {
	id, err := ProblemID(item.Subject)
	if err != nil {
		return Derived{}, err
	}

	statement, err := ExtractBody(item.RawBody)
	if err != nil {
		return Derived{ID: id}, err
	}

	return Derived{ID: id, Statement: statement}, nil
}
