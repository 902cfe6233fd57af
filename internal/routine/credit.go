package routine

import "strings"

// CreditRule awards Credits lectures to a done block whose name contains Pattern.
type CreditRule struct {
	Pattern string
	Credits int
}

// CreditRules is evaluated first-match. The patterns are substrings of the
// schedule template labels; rewording a label without updating this table
// silently drops its credit to zero.
var CreditRules = []CreditRule{
	{"인강 3강", 1},
	// Weekend double sessions.
	{"오전 인강 2강", 2},
	{"오후 인강 2강", 2},
	{"후반 인강 2강", 2},
	{"인강 2강", 1},
	{"인강 1강", 1},
	{"인강 1~2강", 1},
	{"인강 이어서", 1},
}

// Credit returns the lecture credits earned by completing the named block.
func Credit(block string) int {
	for _, r := range CreditRules {
		if strings.Contains(block, r.Pattern) {
			return r.Credits
		}
	}
	return 0
}
