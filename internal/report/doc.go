// Package report assembles the application section of a crash report: every
// running app process, the process that crashed, and any custom attributes.
package report
