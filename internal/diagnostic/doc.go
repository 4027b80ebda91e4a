// Package diagnostic provides structured warnings, errors, and audit notes
// collected while reading and classifying a command set.
//
// Key capabilities:
//   - Batched errors, so one run reports every unclassifiable command
//   - Warnings for unknown type tags and dropped duplicate parameters
//   - Info notes recording each verb/noun decision for review
package diagnostic
