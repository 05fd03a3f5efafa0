// Package validation checks conversion jobs before any file is read.
//
// JobValidator applies validator/v10 struct tags on domain.ConversionJob plus
// two custom rules: "format" (a registered output format) and
// "nonnegative_ints" (skip line indexes). FileValidator checks that inputs are
// readable files and that the output path is not a directory.
package validation
