/*
Package status turns run results into the lines a person reads.

🎯 Purpose:
- One summary per rewritten file: "source → output" plus version, replacement
  count, encoding and size
- Human readable byte sizes
- Progress and failure lines

📝 Two flavours are provided: DefaultFileFormatter produces plain text for logs and
tests, FormatResultLine adds color for terminals.
*/
package status
