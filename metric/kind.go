// Package metric converts run values between the integer stored for a
// category and the text a runner types or reads.
package metric

import (
	"fmt"

	"speedrun/app_error"
)

// Kind decides how a category's values are entered, shown and compared.
type Kind string

const (
	Time  Kind = "time"
	Count Kind = "count"
	Score Kind = "score"
)

var Kinds = []Kind{Time, Count, Score}

// Descriptor is the display metadata of a kind.
type Descriptor struct {
	Label       string `json:"label"`
	Placeholder string `json:"placeholder"`
	HelpText    string `json:"help_text"`
	Ascending   bool   `json:"ascending"`
}

var descriptors = map[Kind]Descriptor{
	Time: {
		Label:       "Time",
		Placeholder: "e.g., 5:23.456",
		HelpText:    "lower is better",
		Ascending:   true,
	},
	Count: {
		Label:       "Count",
		Placeholder: "e.g., 25",
		HelpText:    "higher is better",
	},
	Score: {
		Label:       "Score",
		Placeholder: "e.g., 10000",
		HelpText:    "higher is better",
	},
}

func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if _, ok := descriptors[k]; !ok {
		return "", fmt.Errorf("%w: unknown metric type %q", app_error.ErrInvalidFormat, s)
	}
	return k, nil
}

func (k Kind) Valid() bool {
	_, ok := descriptors[k]
	return ok
}

func (k Kind) Describe() Descriptor {
	return descriptors[k]
}

func Label(k Kind) string {
	return descriptors[k].Label
}

func Placeholder(k Kind) string {
	return descriptors[k].Placeholder
}

func HelpText(k Kind) string {
	return descriptors[k].HelpText
}

// Ascending reports whether lower values rank higher.
func Ascending(k Kind) bool {
	return descriptors[k].Ascending
}
