// Package curator implements the curation pipeline around the Gemini API.
//
// The package has three parts:
//
//   - Request building: turning a free-text query plus a [models.RequestProfile]
//     into a generation instruction and a strict output schema (builder.go)
//   - The curation client: invoking the generative backend with search
//     grounding enabled, parsing the structured response, and merging grounding
//     citations into the result (client.go)
//   - The manual analysis client: scoring and annotating a caller-supplied
//     item list without generating new items (manual.go)
//
// Backend failures are classified into a closed set of error kinds
// ([CurationError]) so callers never match on message text.
package curator
