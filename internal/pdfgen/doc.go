// Package pdfgen builds PDFs without a browser engine and post-processes
// engine output.
//
// Static and Cover lay out a job summary with fpdf: a cover page listing
// every source, then exactly one page per source with its address and
// either a Markdown digest (walked from the goldmark AST) or an error
// placeholder. Compression is disabled so text such as addresses appears
// literally in the content streams. Raw emits the same facts with a
// hand-written PDF writer and cannot fail.
//
// Merge and PageCount wrap pdfcpu.
package pdfgen
