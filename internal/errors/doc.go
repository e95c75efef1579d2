// Package errors provides structured, actionable error messages for CrewHub.
//
// # Error Categories
//
// Errors are organized into categories:
//   - content: catalog/registry misuse (unknown kind, missing entry)
//   - blueprint: blueprint validation failures
//   - mod: mod pack fetching and loading errors
//   - config: crewhub.json parsing and IO errors
//   - api: HTTP surface errors (bad request bodies, upgrade failures)
//
// # Error Codes
//
// Each error has a unique code (e.g., "E301") that maps to:
//   - A short message describing the error
//   - A detailed explanation
//   - A documentation URL
//
// # Usage
//
//	err := errors.New("E301").
//	    WithDetail("Mod manifest is missing a modId").
//	    WithSuggestion("Add a \"modId\" field to the manifest")
//
//	fmt.Println(err.Format())
package errors
