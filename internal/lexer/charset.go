package lexer

import "strings"

// characterClasses is the fixed set of letters accepted after '\' or '\_'
// to form a Cls token (\d, \_s, ...).
const characterClasses = "iIkKfFpPsSdDxXoOwWhHaAlLuU"

// optFlags is the fixed set of letters accepted after '\' to form an Opts
// token (\c, \v, ...).
const optFlags = "cCZmMvV"

// setExtraChars are the non-alphanumeric characters permitted inside a
// bracketed character set.
const setExtraChars = "-_.:"

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlnum(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isClassLetter(c byte) bool {
	return strings.IndexByte(characterClasses, c) >= 0
}

func isOptFlag(c byte) bool {
	return strings.IndexByte(optFlags, c) >= 0
}

func isSetChar(c byte) bool {
	return isAlnum(c) || strings.IndexByte(setExtraChars, c) >= 0
}
