// Package filter selects HAR entries with include/ignore rules.
//
// # Rules
//
// A RuleSet groups patterns by the part of the request URL they look at:
//
//   - domains: the URL host
//   - paths: the URL path ("/" when absent)
//   - extensions: the file extension of the last path segment, compared
//     exactly and case-insensitively ("png" and ".PNG" are the same rule)
//   - urls: the full URL
//
// A RuleSet matches an entry when any pattern in any category matches.
//
// # Patterns
//
// Every domains, paths and urls pattern is either a glob or a delimited
// regular expression. A pattern is a regex when its first character is one of
// / # ~ @ % and that character appears again later, as in "/^https:\/\/ads\./i".
// The text after the closing delimiter holds modifiers (i, m, s, U, and A to
// anchor at the start of the subject). PCRE's x is not supported.
// Everything else is a glob:
//
//	**   any characters, including "/"
//	*    any characters except "/"
//	?    one character except "/"
//
// Globs are case-insensitive and match anywhere in the subject. A glob made of
// leading stars and a literal that starts with "." and holds no "/" ("*.json",
// "**.min.js", "*.example.com") must match at the end of the subject.
//
// The classification is purely syntactic, so anything starting with "/" and
// containing another "/" is a regular expression: "/static/" has body
// "static", and "/static/**" fails to compile. Write "static/**" or
// "**/static/**" to get glob behavior.
//
// # Modes
//
// A Config holds an include set and an ignore set. When the include set has
// any patterns only entries matching it are kept and the ignore set is not
// consulted at all. Otherwise entries matching the ignore set are dropped.
// With no patterns every entry is kept.
package filter
