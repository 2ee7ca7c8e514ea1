// Package main hosts the panosort CLI entrypoint.
//
// panosort takes an input folder and an output folder, walks the input, and
// copies every image whose embedded metadata marks it as a panorama into the
// same relative location under the output, with the file name tagged. The
// command wires configuration, logging, preflight checks, the output lock,
// and the optional run journal around the scanner; the pipeline itself lives
// in internal/scanner.
package main
