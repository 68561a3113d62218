// Package file persists caseview settings as a TOML file under the
// user's config directory. The settings are typed: storage backend
// selection, record API credentials, rendition URL derivation, and the
// displayable-extension whitelist. Only the composition root consumes
// them, so no core port is involved.
package file
