package helpers

import (
	"math/rand"
	"strings"
	"unicode"
)

// Fuzzer provides utilities for generating adversarial input strings
type Fuzzer struct {
	rnd *rand.Rand
}

// NewFuzzer creates a new Fuzzer with the given seed
func NewFuzzer(seed int64) *Fuzzer {
	return &Fuzzer{
		rnd: rand.New(rand.NewSource(seed)),
	}
}

// FuzzObjectID generates node id test cases. Some are hostile but still a
// single path segment; the rest try to escape the segment.
func (f *Fuzzer) FuzzObjectID() []string {
	return []string{
		// Empty and boundary cases
		"",
		".",
		"..",
		strings.Repeat("1", 256),
		strings.Repeat("1", 257),

		// Segment escapes
		"123/likes",
		"123?access_token=stolen",
		"123#fragment",
		"123%2Flikes",
		"123\\likes",
		"123 456",
		"123\t456",
		"123\r\nX-Injected: 1",
		"me/permissions",
		"../oauth/access_token",

		// SQL injection
		"123'; DROP TABLE--",
		"123' OR '1'='1",

		// Unicode
		"тест",
		"测试",
		"123\u202E456",
		"123\u200B456",

		// Control characters
		"123\x00",
		"\x1B123",
		"123\x7F",

		// Mixed
		"123_456",
		"123&fields=email",
		"123;456",
		"<script>",
	}
}

// FuzzEdgeLimit generates adversarial page sizes
func (f *Fuzzer) FuzzEdgeLimit() []int {
	return []int{
		-1,
		-100,
		-2147483648,
		0,
		1,
		5000,
		2147483647,
	}
}

// FuzzLocale generates locale test cases
func (f *Fuzzer) FuzzLocale() []string {
	return []string{
		"",
		"en",
		"en-US",
		"en_us",
		"EN_US",
		"en_US\n",
		"en_US&access_token=x",
		"en_US ",
		"eng_USA",
	}
}

// GenerateRandomString generates a random string of the given length with specified character types
func (f *Fuzzer) GenerateRandomString(length int, includeSpecial bool) string {
	const (
		letters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
		special = "!@#$%^&*()_+-=[]{}|;':\",./<>?`~"
	)

	charset := letters
	if includeSpecial {
		charset += special
	}

	result := make([]byte, length)
	for i := range result {
		result[i] = charset[f.rnd.Intn(len(charset))]
	}
	return string(result)
}

// GenerateControlCharString generates strings with each control character
func (f *Fuzzer) GenerateControlCharString() []string {
	var results []string
	for i := rune(0); i < 32; i++ {
		if unicode.IsControl(i) {
			results = append(results, "123"+string(i)+"456")
		}
	}
	return append(results, "123\x7F456")
}

// GeneratePathTraversals generates path traversal attack patterns
func (f *Fuzzer) GeneratePathTraversals() []string {
	return []string{
		"../../etc/passwd",
		"..\\..\\windows\\system32\\config\\sam",
		"..%2F..%2F..%2Fetc%2Fpasswd",
		"....//....//etc/passwd",
		"..;/..;/etc/passwd",
		"/etc/passwd",
	}
}
