package helpers

import (
	"fmt"
	"strings"
)

// JSONGenerator creates malicious and malformed Graph payloads for testing
type JSONGenerator struct{}

// NewJSONGenerator creates a new JSON generator
func NewJSONGenerator() *JSONGenerator {
	return &JSONGenerator{}
}

// GenerateDeeplyNestedComment creates a comment whose parent chain is depth levels deep
func (g *JSONGenerator) GenerateDeeplyNestedComment(depth int) string {
	var sb strings.Builder
	for i := 0; i < depth; i++ {
		fmt.Fprintf(&sb, `{"id":"c%d","message":"depth %d","parent":`, i, i)
	}
	fmt.Fprintf(&sb, `{"id":"c%d"}`, depth)
	sb.WriteString(strings.Repeat("}", depth))
	return sb.String()
}

// GenerateMalformedPosts creates post objects with wrong or missing values
func (g *JSONGenerator) GenerateMalformedPosts() []string {
	return []string{
		// Missing or unusable id
		`{}`,
		`{"id": null}`,
		`{"id": ""}`,
		`{"id": 123}`,
		`{"id": ["1"]}`,
		`{"message": "no id"}`,

		// Wrong value types
		`{"id": "1", "message": 42}`,
		`{"id": "1", "created_time": "yesterday"}`,
		`{"id": "1", "created_time": 1496000000}`,
		`{"id": "1", "from": "alice"}`,
		`{"id": "1", "from": {"name": "no id"}}`,
		`{"id": "1", "shares": 3}`,
		`{"id": "1", "shares": {"count": "three"}}`,
		`{"id": "1", "status_type": "made_up_type"}`,
		`{"id": "1", "is_hidden": "yes"}`,

		// Broken nested edges
		`{"id": "1", "likes": []}`,
		`{"id": "1", "likes": {"data": "none"}}`,
		`{"id": "1", "comments": {"data": [null, 1, "x", {"message": "no id"}]}}`,
		`{"id": "1", "comments": {"data": [], "paging": "next"}}`,
		`{"id": "1", "comments": {"data": [], "summary": {"total_count": "many"}}}`,
	}
}

// GenerateMalformedLists creates edge pages with broken structure
func (g *JSONGenerator) GenerateMalformedLists() []string {
	return []string{
		`{}`,
		`{"data": null}`,
		`{"data": {}}`,
		`{"data": "[]"}`,
		`{"data": [null]}`,
		`{"data": [[]]}`,
		`{"data": [{"id": 1}, {"id": "2"}]}`,
		`{"data": [], "paging": {"cursors": "abc"}}`,
		`{"data": [], "paging": {"next": 12}}`,
	}
}

// GenerateMalformedErrorEnvelopes creates Graph error envelopes with odd shapes
func (g *JSONGenerator) GenerateMalformedErrorEnvelopes() []string {
	return []string{
		`{"error": "something went wrong"}`,
		`{"error": ""}`,
		`{"error": {}}`,
		`{"error": {"code": "190"}}`,
		`{"error": {"code": 1.5, "error_subcode": -1}}`,
		`{"error": {"message": 190, "type": {}}}`,
		`{"id": "1", "error": {"code": 190}}`,
	}
}

// GenerateNonEnvelopeErrorKeys creates posts whose "error" key holds something
// other than an object or a string
func (g *JSONGenerator) GenerateNonEnvelopeErrorKeys() []string {
	return []string{
		`{"id": "1", "error": null}`,
		`{"id": "1", "error": []}`,
		`{"id": "1", "error": [{"code": 190}]}`,
		`{"id": "1", "error": true}`,
		`{"id": "1", "error": 190}`,
	}
}

// GenerateMalformedTokenResponses creates token endpoint responses with invalid data
func (g *JSONGenerator) GenerateMalformedTokenResponses() []string {
	return []string{
		`{}`,
		`{"access_token": ""}`,
		`{"access_token": null}`,
		`{"access_token": 12345}`,
		`{"token_type": "bearer", "expires_in": 3600}`,
		`{"access_token": ["a", "b"]}`,
	}
}

// GenerateTokenResponseWithInvalidExpiry creates token responses whose token is
// usable but whose expiry is not
func (g *JSONGenerator) GenerateTokenResponseWithInvalidExpiry() []string {
	return []string{
		`{"access_token": "tok", "expires_in": -1}`,
		`{"access_token": "tok", "expires_in": "soon"}`,
		`{"access_token": "tok", "expires_in": 1e400}`,
		`{"access_token": "tok", "expires_in": 99999999999999999999}`,
		`{"access_token": "tok", "expires_in": null}`,
	}
}

// GenerateJSONBomb creates deeply nested objects designed to exhaust parsers
func (g *JSONGenerator) GenerateJSONBomb(depth int) string {
	opening := strings.Repeat(`{"a":`, depth)
	closing := strings.Repeat(`}`, depth)
	return `{"id":"bomb","from":` + opening + `"value"` + closing + `}`
}

// GenerateLargeList creates an edge page with size comments
func (g *JSONGenerator) GenerateLargeList(size int) string {
	elements := make([]string, size)
	for i := 0; i < size; i++ {
		elements[i] = fmt.Sprintf(`{"id":"c%d","message":"comment %d"}`, i, i)
	}
	return `{"data":[` + strings.Join(elements, ",") + `],"summary":{"total_count":` + fmt.Sprint(size) + `}}`
}

// GenerateCircularThread creates comments whose parents point at each other
func (g *JSONGenerator) GenerateCircularThread() string {
	return `{"data":[
		{"id":"a","parent":{"id":"b"}},
		{"id":"b","parent":{"id":"a"}},
		{"id":"c","parent":{"id":"c"}},
		{"id":"d"}
	]}`
}
