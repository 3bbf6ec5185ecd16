// Package report renders a model.Snapshot for people.
//
// This package contains writers for different output formats:
//   - TextWriter: the plain terminal report with fixed section headers
//   - MarkdownWriter: the same content as a Markdown document
//
// Writers implement the Writer interface, allowing them to be used
// interchangeably and composed with MultiWriter.
package report
