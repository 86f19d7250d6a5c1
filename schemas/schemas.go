// Package schemas embeds the JSON Schemas for the artifacts speech-coach writes.
package schemas

import "embed"

// Schema file names
const (
	Report   = "report.schema.json"
	Feedback = "feedback.schema.json"
)

//go:embed *.schema.json
var files embed.FS

// Read returns the content of an embedded schema file
func Read(name string) ([]byte, error) {
	return files.ReadFile(name)
}

// Names lists the embedded schema files
func Names() []string {
	return []string{Feedback, Report}
}
