package command

import "strings"

// ParseResult is a player input line split into its command word and
// arguments.
type ParseResult struct {
	// Command is the first word, lowercased.
	Command string
	// Args are the remaining words.
	Args []string
	// RawArgs keeps the argument text as typed, so multi-word item and
	// spot names like "brass key" survive with their spacing and case.
	RawArgs string
}

// Parse splits an input line at the first space. A blank line parses to a
// zero ParseResult.
func Parse(line string) ParseResult {
	word, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
	if word == "" {
		return ParseResult{}
	}
	res := ParseResult{
		Command: strings.ToLower(word),
		RawArgs: strings.TrimSpace(rest),
	}
	if res.RawArgs != "" {
		res.Args = strings.Fields(res.RawArgs)
	}
	return res
}
