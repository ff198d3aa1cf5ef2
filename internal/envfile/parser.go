package envfile

import (
	"bufio"
	"io"
	"math"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	quoteChars     = `"'`
	initialLineBuf = 64 * 1024
)

// ParseLine turns one line into a pair. Lines that do not start with a letter
// or that carry no "=" yield no pair; this is how comments and blank lines are
// skipped. One leading and one trailing quote character are stripped from the
// value.
func ParseLine(line string) (Pair, bool) {
	first, _ := utf8.DecodeRuneInString(line)
	if first == utf8.RuneError || !unicode.IsLetter(first) {
		return Pair{}, false
	}

	key, value, ok := strings.Cut(line, "=")
	if !ok {
		return Pair{}, false
	}

	return Pair{Key: key, Value: stripQuotes(value)}, true
}

// Parse reads lines from r and collects every pair ParseLine yields.
// Later lines overwrite earlier ones with the same key.
func Parse(r io.Reader) (EnvMap, error) {
	env := make(EnvMap)
	scanner := bufio.NewScanner(r)
	// Lines have no length limit; values may hold inlined certificates or JSON.
	scanner.Buffer(make([]byte, 0, initialLineBuf), math.MaxInt)
	for scanner.Scan() {
		if p, ok := ParseLine(scanner.Text()); ok {
			env.Set(p)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return env, nil
}

func stripQuotes(value string) string {
	if value != "" && strings.ContainsRune(quoteChars, rune(value[0])) {
		value = value[1:]
	}
	if value != "" && strings.ContainsRune(quoteChars, rune(value[len(value)-1])) {
		value = value[:len(value)-1]
	}
	return value
}
